package resources

import (
	"context"
	"log/slog"

	"github.com/testersconnect/site/pkg/storage"
)

type upload struct {
	bucket string
	key    string
}

// saga records objects written during a create so a later failure can
// remove them again.
type saga struct {
	objects storage.System
	logger  *slog.Logger
	uploads []upload
}

func (s *saga) put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := s.objects.Store(ctx, bucket, key, data, contentType); err != nil {
		return err
	}
	s.uploads = append(s.uploads, upload{bucket: bucket, key: key})
	return nil
}

// compensate deletes every recorded upload, newest first. Failures are
// logged and do not stop the remaining deletes.
func (s *saga) compensate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(s.uploads) - 1; i >= 0; i-- {
		u := s.uploads[i]
		if err := s.objects.Delete(ctx, u.bucket, u.key); err != nil {
			s.logger.Error("compensating delete failed", "bucket", u.bucket, "key", u.key, "error", err)
			continue
		}
		s.logger.Info("compensating delete", "bucket", u.bucket, "key", u.key)
	}
	s.uploads = nil
}
