package avatar

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/matchpoint-gg/matchpoint/internal/storage"
	"github.com/matchpoint-gg/matchpoint/internal/user"
)

// OwnerStore is the slice of the user store the pipeline needs: the atomic
// reference swap and the public read used to build the change event.
type OwnerStore interface {
	SwapAvatar(ctx context.Context, id int64, newKey string) (prev string, err error)
	GetByID(ctx context.Context, id int64) (user.PublicUser, error)
}

// Broadcaster delivers one event to every live connection, best effort.
type Broadcaster interface {
	Broadcast(v any)
}

// UpdateEvent is the wire shape pushed to live connections after a commit.
type UpdateEvent struct {
	Type string          `json:"type"`
	User user.PublicUser `json:"user"`
}

// Pipeline drives one avatar update: validate, stage, commit, then reap the
// superseded object and notify live sessions. Reap and notify run after the
// commit and cannot affect the caller's result.
type Pipeline struct {
	stager *Stager
	reaper *Reaper
	owners OwnerStore
	bcast  Broadcaster
	now    func() time.Time

	wg sync.WaitGroup
}

func NewPipeline(store storage.BlobStore, maxBytes int64, owners OwnerStore, bcast Broadcaster) *Pipeline {
	return &Pipeline{
		stager: NewStager(store, maxBytes),
		reaper: NewReaper(store),
		owners: owners,
		bcast:  bcast,
		now:    time.Now,
	}
}

// Update runs the pipeline for one upload attempt and returns the committed
// key. Errors: ErrNoFile / ErrUnsupportedType / ErrTooLarge for rejected
// input, user.ErrNotFound if the owner vanished before commit, anything else
// is a storage write failure. Whatever the outcome, no orphaned object
// survives the attempt.
func (p *Pipeline) Update(ctx context.Context, ownerID int64, filename string, body io.Reader) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}

	key := GenerateKey(ownerID, p.now())
	if err := p.stager.Stage(key, body); err != nil {
		return "", err
	}

	prev, err := p.owners.SwapAvatar(ctx, ownerID, key)
	if err != nil {
		// The owner row is gone (or the commit failed); the staged
		// object must not become an orphan.
		if derr := p.stager.Discard(key); derr != nil {
			log.Printf("avatar: discard staged %q: %v", key, derr)
		}
		return "", err
	}

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		p.reaper.TryRemove(prev)
	}()
	go func() {
		defer p.wg.Done()
		p.notify(ownerID)
	}()
	return key, nil
}

func (p *Pipeline) notify(ownerID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u, err := p.owners.GetByID(ctx, ownerID)
	if err != nil {
		log.Printf("avatar: load user %d for broadcast: %v", ownerID, err)
		return
	}
	p.bcast.Broadcast(UpdateEvent{Type: "user_updated", User: u})
}

// Wait blocks until in-flight post-commit work has drained. Used on
// shutdown and in tests.
func (p *Pipeline) Wait() { p.wg.Wait() }
