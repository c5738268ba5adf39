// Package objectstore puts uploaded files into S3-compatible storage or a
// local directory and maps object keys to public URLs.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/studydesk/core/internal/config"
)

//go:generate mockgen -source=store.go -destination=../../../mocks/objectstore/mock_store.go -package=mock_objectstore Store

// Store is the object storage used by uploads and avatars.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

var ErrInvalidKey = errors.New("invalid object key")

// New builds the store selected by cfg.Driver. staticDir is only used by
// the local driver.
func New(cfg config.StorageConfig, staticDir string) (Store, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Store(cfg)
	case config.StorageLocal:
		return NewLocalStore(staticDir, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// KeyFromURL reverses PublicURL. ok is false for URLs that do not point
// into s.
func KeyFromURL(s Store, rawURL string) (key string, ok bool) {
	prefix := s.PublicURL("")
	if prefix == "" || !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key = normalizeKey(strings.TrimPrefix(rawURL, prefix))
	return key, key != ""
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

// validKey rejects empty keys and any path traversal.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
