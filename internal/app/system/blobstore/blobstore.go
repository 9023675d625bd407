// Package blobstore uploads resume files to object storage and returns the
// public URL the stored object is served from. Keys are partitioned by
// year/month with a random prefix so concurrent uploads never collide and no
// caller-controlled text ends up in the key.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// Uploader stores a file and returns the URL it will be served from.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, contentType string) (string, error)
}

// objectWriter is the slice of the storage backend we need.
type objectWriter interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
}

// FileStore uploads files into a storage backend under a fixed key prefix.
type FileStore struct {
	store   objectWriter
	baseURL string
	prefix  string
}

// NewFileStore returns a FileStore that writes under prefix and builds public
// URLs from baseURL.
func NewFileStore(store objectWriter, baseURL, prefix string) *FileStore {
	return &FileStore{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  strings.Trim(prefix, "/"),
	}
}

// Upload writes the file under a generated key and returns its public URL.
// The original filename contributes only its extension to the key.
func (f *FileStore) Upload(ctx context.Context, filename string, r io.Reader, contentType string) (string, error) {
	key := f.objectKey(filename)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := &storage.PutOptions{ContentType: contentType}

	if err := f.store.Put(ctx, key, r, opts); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}
	return f.baseURL + "/" + key, nil
}

// objectKey builds "<prefix>/YYYY/MM/<uuid8><ext>".
func (f *FileStore) objectKey(filename string) string {
	now := time.Now().UTC()
	id := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%04d/%02d/%s%s", f.prefix, now.Year(), now.Month(), id, safeExt(filename))
}

// safeExt returns the lowercase extension of filename, or "" if it contains
// anything outside [a-z0-9.].
func safeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if ext == "." || len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
