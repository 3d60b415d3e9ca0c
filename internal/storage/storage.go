// Package storage archives source gazettes in an S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"time"
)

// GazettePrefix is the key prefix under which processed PDFs are archived.
const GazettePrefix = "gazettes/"

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// PutOptions describes an upload.
// Size should be the exact number of bytes if known, or -1 to let the
// backend chunk the upload.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used for the gazette archive.
// Methods stream their payloads and never touch local disk.
type Storage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// GazetteKey maps a source file name to its archive key.
// Directory components are dropped so keys stay flat.
func GazetteKey(filename string) string {
	return GazettePrefix + path.Base(filename)
}
