// Package storage is the object storage collaborator for image attachments.
// Failures are returned as *Error with a Kind derived from structured S3
// error codes.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/agrodash/agroadmin/internal/server/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store is what attachment handling needs from object storage.
type Store interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string, upsert bool) error
	Remove(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
	KeyFromURL(bucket, url string) (string, bool)
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Store talks to an S3-compatible backend such as MinIO.
type S3Store struct {
	client        s3API
	publicBaseURL string
}

// NewS3Store builds a path-style S3 client from the server configuration.
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, publicBaseURL: cfg.S3PublicBaseURL}, nil
}

// Upload stores body under bucket/key. Without upsert an existing object
// is left alone and the call fails.
func (s *S3Store) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string, upsert bool) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if !upsert {
		in.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return wrap("upload", bucket, key, err)
	}
	return nil
}

func (s *S3Store) Remove(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrap("remove", bucket, key, err)
	}
	return nil
}

// CheckBucket verifies bucket exists and is reachable with our credentials.
func (s *S3Store) CheckBucket(ctx context.Context, bucket string) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		serr := &Error{Kind: Classify(err), Op: "head", Bucket: bucket, Err: err}
		// HEAD responses carry no error body, only the status.
		if serr.Kind == KindUnknown && httpStatus(err) == http.StatusNotFound {
			serr.Kind = KindBucketMissing
		}
		return serr
	}
	return nil
}

func (s *S3Store) PublicURL(bucket, key string) string {
	return PublicURL(s.publicBaseURL, bucket, key)
}

func (s *S3Store) KeyFromURL(bucket, url string) (string, bool) {
	return KeyFromPublicURL(s.publicBaseURL, bucket, url)
}

var _ Store = (*S3Store)(nil)
