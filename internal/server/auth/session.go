package auth

import (
	"context"
	"strings"

	"github.com/agrodash/agroadmin/internal/common"
)

// Session is the authenticated caller: who they are and the raw token that
// is forwarded to the external REST API.
type Session struct {
	UserID      string
	AccessToken string
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored in ctx, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(common.BearerPrefix):])
	return tok, tok != ""
}

// Verifier turns raw bearer tokens into sessions.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks token and builds the Session for it.
func (v *Verifier) Verify(token string) (Session, error) {
	userID, err := GetUserIDFromToken(token, v.secret)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, AccessToken: token}, nil
}
