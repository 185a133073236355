package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/testersconnect/site/pkg/lifecycle"
)

// Filesystem stores objects as files under {basePath}/{bucket}/{key}.
type Filesystem struct {
	basePath  string
	publicURL string
	logger    *slog.Logger
}

// NewFilesystem resolves the base path. Directory creation is deferred to Start.
func NewFilesystem(cfg *Config, logger *slog.Logger) (*Filesystem, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &Filesystem{
		basePath:  absPath,
		publicURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:    logger.With("system", "storage", "provider", "filesystem"),
	}, nil
}

func (f *Filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "base_path", f.basePath)

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.basePath, 0755); err != nil {
			f.logger.Error("storage initialization failed", "error", err)
			return
		}
		f.logger.Info("storage directory initialized")
	})

	return nil
}

// Store writes to a temp file and renames it into place.
func (f *Filesystem) Store(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	path, err := f.fullPath(bucket, key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func (f *Filesystem) Delete(ctx context.Context, bucket, key string) error {
	path, err := f.fullPath(bucket, key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("remove file: %w", err)
	}

	f.pruneEmpty(filepath.Dir(path), filepath.Join(f.basePath, bucket))
	return nil
}

func (f *Filesystem) Exists(ctx context.Context, bucket, key string) (bool, error) {
	path, err := f.fullPath(bucket, key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return false, ErrPermissionDenied
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return true, nil
}

func (f *Filesystem) PublicURL(bucket, key string) string {
	return publicURL(f.publicURL, bucket, key)
}

// Handler serves stored objects at /{bucket}/{key...}.
func (f *Filesystem) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{bucket}/{key...}", func(w http.ResponseWriter, r *http.Request) {
		path, err := f.fullPath(r.PathValue("bucket"), r.PathValue("key"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	})
	return mux
}

// pruneEmpty removes empty directories from dir up to, not including, stop.
func (f *Filesystem) pruneEmpty(dir, stop string) {
	for dir != stop && strings.HasPrefix(dir, stop) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			f.logger.Warn("failed to read directory for cleanup", "dir", dir, "error", err)
			return
		}
		if len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("failed to remove empty directory", "dir", dir, "error", err)
			return
		}
		dir = filepath.Dir(dir)
	}
}

func (f *Filesystem) fullPath(bucket, key string) (string, error) {
	if !validKey(bucket, key) {
		return "", ErrInvalidKey
	}

	full := filepath.Join(f.basePath, bucket, filepath.FromSlash(key))
	if !strings.HasPrefix(full, f.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return full, nil
}
