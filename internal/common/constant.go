package common

// AuthorizationHeaderName carries the bearer access token on inbound and
// outbound HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
