package avatar

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

func TestReaperRemovesGeneratedKey(t *testing.T) {
	bs, _ := storage.NewFSStore(t.TempDir())
	if _, err := bs.Put("avatar_7_500.png", strings.NewReader("old"), 100); err != nil {
		t.Fatalf("seed: %v", err)
	}
	NewReaper(bs).TryRemove("avatar_7_500.png")
	if _, err := bs.Get("avatar_7_500.png"); err == nil {
		t.Fatal("generated key survived the reaper")
	}
}

func TestReaperLeavesForeignKeys(t *testing.T) {
	bs, _ := storage.NewFSStore(t.TempDir())
	if _, err := bs.Put("default_avatar.png", strings.NewReader("default"), 100); err != nil {
		t.Fatalf("seed: %v", err)
	}
	NewReaper(bs).TryRemove("default_avatar.png")
	if _, err := bs.Get("default_avatar.png"); err != nil {
		t.Fatal("foreign key was deleted")
	}
}

func TestReaperRefusesKeysOutsideRoot(t *testing.T) {
	spy := &spyStore{contains: false}
	NewReaper(spy).TryRemove("avatar_7_500.png")
	if spy.removed != nil {
		t.Fatalf("reaper removed %v despite failed containment", spy.removed)
	}
}

func TestReaperSwallowsRemoveErrors(t *testing.T) {
	spy := &spyStore{contains: true, removeErr: errors.New("gone already")}
	NewReaper(spy).TryRemove("avatar_7_500.png") // must not panic or propagate
	if len(spy.removed) != 1 {
		t.Fatalf("expected one remove attempt, got %d", len(spy.removed))
	}
}

func TestReaperIgnoresEmptyKey(t *testing.T) {
	spy := &spyStore{contains: true}
	NewReaper(spy).TryRemove("")
	if spy.removed != nil {
		t.Fatal("reaper acted on an empty key")
	}
}

// spyStore records Remove calls and answers Contains as configured.
type spyStore struct {
	contains  bool
	removeErr error
	removed   []string
}

func (s *spyStore) Put(key string, r io.Reader, limit int64) (int64, error) { return 0, nil }
func (s *spyStore) Get(key string) (io.ReadCloser, error)                   { return nil, errors.New("not implemented") }
func (s *spyStore) Remove(key string) error {
	s.removed = append(s.removed, key)
	return s.removeErr
}
func (s *spyStore) Contains(key string) bool { return s.contains }
func (s *spyStore) Root() string             { return "/spy" }
