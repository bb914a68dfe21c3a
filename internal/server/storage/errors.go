package storage

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"
)

// Kind classifies object storage failures.
type Kind int

const (
	KindUnknown Kind = iota
	// KindPermissionDenied covers rejected credentials and bucket policies.
	KindPermissionDenied
	// KindBucketMissing means the target bucket does not exist.
	KindBucketMissing
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission_denied"
	case KindBucketMissing:
		return "bucket_missing"
	default:
		return "unknown"
	}
}

// Error is returned by every Store operation that fails.
type Error struct {
	Kind   Kind
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s/%s (%s): %v", e.Op, e.Bucket, e.Key, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

var permissionCodes = map[string]struct{}{
	"AccessDenied":          {},
	"AllAccessDisabled":     {},
	"AccountProblem":        {},
	"InvalidAccessKeyId":    {},
	"SignatureDoesNotMatch": {},
	"ExpiredToken":          {},
	"InvalidToken":          {},
	"Forbidden":             {},
}

// Classify maps an S3 SDK error to a Kind using the structured API error
// code first and the HTTP status code second.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "NoSuchBucket" {
			return KindBucketMissing
		}
		if _, ok := permissionCodes[code]; ok {
			return KindPermissionDenied
		}
	}

	switch httpStatus(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindPermissionDenied
	}

	return KindUnknown
}

func httpStatus(err error) int {
	var withStatus interface{ HTTPStatusCode() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatusCode()
	}
	return 0
}

func wrap(op, bucket, key string, err error) error {
	return &Error{Kind: Classify(err), Op: op, Bucket: bucket, Key: key, Err: err}
}
