// Package attachments attaches uploaded images to records without letting
// expected storage problems block the record write.
package attachments

import (
	"context"
	"fmt"
	"io"

	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/metrics"
	"github.com/agrodash/agroadmin/internal/server/storage"
)

// Upload outcomes, also used as metric label values.
const (
	OutcomeUploaded        = "uploaded"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomePermission      = "permission_denied"
	OutcomeBucketMissing   = "bucket_missing"
	OutcomeFailed          = "failed"

	OutcomeRemoved = "removed"
	OutcomeForeign = "foreign"
)

// File is a client-selected binary to attach.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Manager handles the attachments of one bucket.
type Manager struct {
	store   storage.Store
	bucket  string
	log     logging.Logger
	metrics *metrics.Metrics
}

func NewManager(store storage.Store, bucket string, log logging.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		store:   store,
		bucket:  bucket,
		log:     log.With("module", "attachments", "bucket", bucket),
		metrics: m,
	}
}

func (m *Manager) Bucket() string { return m.bucket }

// Resolve returns the attachment reference to persist with a record.
//
// Without a file, or when the upload cannot happen for an expected reason
// (no session, permission denied, missing bucket), current is returned
// unchanged and err is nil. Any other upload failure is returned and the
// caller must not write the record.
func (m *Manager) Resolve(ctx context.Context, current *string, file *File) (*string, error) {
	if file == nil {
		return current, nil
	}

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		m.log.Warn(ctx, "no session, saving record without new attachment", "file", file.Name)
		m.metrics.AttachmentUpload(OutcomeUnauthenticated)
		return current, nil
	}

	key := storage.ObjectKey(session.UserID, file.Name)
	err := m.store.Upload(ctx, m.bucket, key, file.Body, file.Size, file.ContentType, true)
	if err != nil {
		switch storage.KindOf(err) {
		case storage.KindPermissionDenied:
			m.log.Warn(ctx, "upload not permitted, saving record without new attachment", "key", key, "error", err)
			m.metrics.AttachmentUpload(OutcomePermission)
			return current, nil
		case storage.KindBucketMissing:
			m.log.Warn(ctx, "bucket missing, saving record without new attachment", "key", key, "error", err)
			m.metrics.AttachmentUpload(OutcomeBucketMissing)
			return current, nil
		default:
			m.metrics.AttachmentUpload(OutcomeFailed)
			return nil, fmt.Errorf("upload attachment: %w", err)
		}
	}

	url := m.store.PublicURL(m.bucket, key)
	m.log.Info(ctx, "attachment uploaded", "key", key, "user_id", session.UserID)
	m.metrics.AttachmentUpload(OutcomeUploaded)
	return &url, nil
}

// Release removes the blob behind ref after its record was deleted. It
// never fails: references outside the bucket are ignored and problems are
// only logged.
func (m *Manager) Release(ctx context.Context, ref *string) {
	if ref == nil || *ref == "" {
		return
	}

	key, ok := m.store.KeyFromURL(m.bucket, *ref)
	if !ok {
		m.log.Debug(ctx, "attachment outside bucket, not removing", "url", *ref)
		m.metrics.AttachmentCleanup(OutcomeForeign)
		return
	}

	if _, ok := auth.SessionFromContext(ctx); !ok {
		m.log.Warn(ctx, "no session, attachment left in storage", "key", key)
		m.metrics.AttachmentCleanup(OutcomeUnauthenticated)
		return
	}

	if err := m.store.Remove(ctx, m.bucket, key); err != nil {
		m.log.Warn(ctx, "attachment cleanup failed", "key", key, "error", err)
		m.metrics.AttachmentCleanup(OutcomeFailed)
		return
	}

	m.metrics.AttachmentCleanup(OutcomeRemoved)
}
