package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data/avatars"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	return &FSStore{base: abs}, nil
}

func (s *FSStore) Root() string { return s.base }

// Put streams r into the object named by key. If r yields more than limit
// bytes, or the write fails partway, the partial file is removed before the
// error is returned.
func (s *FSStore) Put(key string, r io.Reader, limit int64) (int64, error) {
	if err := validateKey(key); err != nil {
		return 0, err
	}
	dst := filepath.Join(s.base, key)
	f, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", key, err)
	}

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	cerr := f.Close()
	if err == nil && cerr != nil {
		err = cerr
	}
	if err == nil && n > limit {
		err = ErrSizeLimit
	}
	if err != nil {
		_ = os.Remove(dst)
		if err == ErrSizeLimit {
			return n, err
		}
		return n, fmt.Errorf("write %s: %w", key, err)
	}
	return n, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if !s.Contains(key) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.base, key))
}

func (s *FSStore) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if !s.Contains(key) {
		return ErrInvalidKey
	}
	return os.Remove(filepath.Join(s.base, key))
}

// Contains reports whether key, resolved against the root, stays strictly
// inside it after canonicalizing any relative components.
func (s *FSStore) Contains(key string) bool {
	resolved := filepath.Clean(filepath.Join(s.base, key))
	return strings.HasPrefix(resolved, s.base+string(filepath.Separator))
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
