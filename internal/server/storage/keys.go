package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// newName is a seam for tests.
var newName = func() string { return uuid.NewString() }

// ObjectKey builds "{userID}/{random}.{ext}" where ext is the lowercased
// extension of filename. A name without extension yields no suffix.
func ObjectKey(userID, filename string) string {
	key := userID + "/" + newName()
	if ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")); ext != "" {
		key += "." + ext
	}
	return key
}

// PublicURL joins base, bucket and key.
func PublicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}

// KeyFromPublicURL returns the object key of url if it points into bucket
// under base. ok is false for any other URL.
func KeyFromPublicURL(base, bucket, url string) (key string, ok bool) {
	prefix := strings.TrimRight(base, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key = strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	return key, key != ""
}
