package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	n, err := s.Put("avatar_1_100.png", strings.NewReader("png-bytes"), 1000)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("png-bytes")) {
		t.Fatalf("Put wrote %d bytes, want %d", n, len("png-bytes"))
	}
	rc, err := s.Get("avatar_1_100.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "png-bytes" {
		t.Fatalf("Get = %q, want %q", got, "png-bytes")
	}
}

func TestPutOverLimitRemovesPartial(t *testing.T) {
	s := newTestStore(t)
	payload := strings.Repeat("x", 50)
	_, err := s.Put("avatar_1_100.png", strings.NewReader(payload), 10)
	if !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("Put err = %v, want ErrSizeLimit", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "avatar_1_100.png")); !os.IsNotExist(err) {
		t.Fatalf("partial object survived the rejected write")
	}
}

func TestPutReadErrorRemovesPartial(t *testing.T) {
	s := newTestStore(t)
	r := io.MultiReader(strings.NewReader("partial"), failingReader{})
	_, err := s.Put("avatar_1_100.png", r, 1000)
	if err == nil {
		t.Fatal("Put succeeded despite mid-stream read failure")
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "avatar_1_100.png")); !os.IsNotExist(err) {
		t.Fatalf("partial object survived the failed write")
	}
}

func TestPutRejectsBadKeys(t *testing.T) {
	s := newTestStore(t)
	for _, key := range []string{"", "a/b.png", `a\b.png`, "../escape.png"} {
		if _, err := s.Put(key, strings.NewReader("x"), 10); err == nil {
			t.Errorf("Put(%q) accepted an invalid key", key)
		}
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Put("avatar_1_100.png", strings.NewReader("x"), 10); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Remove("avatar_1_100.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get("avatar_1_100.png"); err == nil {
		t.Fatal("object still readable after Remove")
	}
}

func TestContains(t *testing.T) {
	s := newTestStore(t)
	cases := []struct {
		key  string
		want bool
	}{
		{"avatar_1_100.png", true},
		{"default_avatar.png", true},
		{"../outside.png", false},
		{"../../etc/passwd", false},
		{"a/../../outside.png", false},
		{".", false},
	}
	for _, c := range cases {
		if got := s.Contains(c.key); got != c.want {
			t.Errorf("Contains(%q) = %v, want %v", c.key, got, c.want)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stream broke") }
