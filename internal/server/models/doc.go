// Package models defines the records persisted by agroadmin (in Postgres or
// behind the external REST API) and the validated inputs that create them.
package models
