package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem is a Store keeping one file per key in a directory. Like
// Memory it can enforce a byte budget; the budget counts stored values, not
// on-disk size.
type Filesystem struct {
	dir    string
	budget int64
}

// NewFilesystem returns a store rooted at dir, creating it if needed.
// Pass 0 for no budget.
func NewFilesystem(dir string, budget int64) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create storage directory %q: %w", dir, err)
	}
	return &Filesystem{dir: dir, budget: budget}, nil
}

const fileExt = ".kv"

func (s *Filesystem) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *Filesystem) Get(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read key %q: %w", key, err)
	}
	return string(data), true, nil
}

func (s *Filesystem) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if s.budget > 0 {
		total, err := Usage(s)
		if err != nil {
			return err
		}
		if old, ok, err := s.Get(key); err != nil {
			return err
		} else if ok {
			total -= cost(old)
		}
		if total+cost(value) > s.budget {
			return ErrQuotaExceeded
		}
	}
	if err := os.WriteFile(p, []byte(value), 0o644); err != nil {
		return fmt.Errorf("cannot write key %q: %w", key, err)
	}
	return nil
}

func (s *Filesystem) Delete(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot delete key %q: %w", key, err)
	}
	return nil
}

func (s *Filesystem) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list storage directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	return keys, nil
}

var _ Store = (*Filesystem)(nil)
