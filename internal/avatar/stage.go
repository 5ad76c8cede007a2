package avatar

import (
	"fmt"
	"io"

	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

// Stager streams validated bytes into the blob store under a freshly
// generated key. It never buffers the full payload: the store's Put copies
// straight from the request body and enforces the byte ceiling as it goes.
type Stager struct {
	store    storage.BlobStore
	maxBytes int64
}

func NewStager(store storage.BlobStore, maxBytes int64) *Stager {
	return &Stager{store: store, maxBytes: maxBytes}
}

// Stage writes r to a new generated key and returns it. On a ceiling breach
// the partial object is already gone and ErrTooLarge is returned; any other
// mid-write failure likewise removes the partial object before surfacing.
func (s *Stager) Stage(key string, r io.Reader) error {
	_, err := s.store.Put(key, r, s.maxBytes)
	if err == storage.ErrSizeLimit {
		return ErrTooLarge
	}
	if err != nil {
		return fmt.Errorf("stage avatar: %w", err)
	}
	return nil
}

// Discard removes a staged object that will never be committed.
func (s *Stager) Discard(key string) error {
	return s.store.Remove(key)
}
