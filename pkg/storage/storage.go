// Package storage provides bucketed object storage for uploaded files.
// A filesystem provider serves local development; an S3 provider targets
// any S3-compatible hosted store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/testersconnect/site/pkg/lifecycle"
)

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey covers empty keys, empty buckets, and path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System stores objects by bucket and key. Store overwrites existing objects
// and Delete is idempotent.
type System interface {
	Store(ctx context.Context, bucket, key string, data []byte, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
	PublicURL(bucket, key string) string
	Start(lc *lifecycle.Coordinator) error
}

// New builds the configured provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Provider {
	case ProviderS3:
		s, err := NewS3(cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ProviderFilesystem, "":
		f, err := NewFilesystem(cfg, logger)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

func publicURL(base, bucket, key string) string {
	if bucket == "" || key == "" {
		return ""
	}
	segments := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return base + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func validKey(bucket, key string) bool {
	if bucket == "" || key == "" {
		return false
	}
	if strings.Contains(bucket, "/") || strings.Contains(bucket, "..") {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return false
		}
	}
	return !strings.HasPrefix(key, "/")
}
