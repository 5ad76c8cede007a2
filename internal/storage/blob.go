package storage

import (
	"errors"
	"io"
)

var (
	ErrEmptyKey   = errors.New("empty key")
	ErrInvalidKey = errors.New("key contains path separators")
	ErrSizeLimit  = errors.New("size limit exceeded")
)

// BlobStore holds flat, filename-addressed objects. Put streams at most
// limit bytes; crossing the limit or failing mid-write must leave no
// partial object behind.
type BlobStore interface {
	Put(key string, r io.Reader, limit int64) (int64, error)
	Get(key string) (io.ReadCloser, error)
	Remove(key string) error
	Contains(key string) bool // canonical path stays inside the root
	Root() string
}
