package avatar

import (
	"log"

	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

// Reaper disposes of superseded avatar objects. It only ever deletes keys
// this pipeline generated, and only when they resolve inside the managed
// storage root; a stored reference carrying traversal sequences is left
// alone no matter what it names. Cleanup failures are logged, never
// surfaced.
type Reaper struct {
	store storage.BlobStore
}

func NewReaper(store storage.BlobStore) *Reaper { return &Reaper{store: store} }

func (rp *Reaper) TryRemove(prevKey string) {
	if prevKey == "" {
		return
	}
	if !IsGeneratedKey(prevKey) {
		return
	}
	if !rp.store.Contains(prevKey) {
		log.Printf("avatar: refusing to reap %q: escapes storage root", prevKey)
		return
	}
	if err := rp.store.Remove(prevKey); err != nil {
		log.Printf("avatar: reap %q: %v", prevKey, err)
	}
}
