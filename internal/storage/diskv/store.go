// Package diskv stores each record as a file under a base directory.
package diskv

import (
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

type Store struct {
	path string
	d    *diskv.Diskv
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.path,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.path, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'weekendly init' first")
	}
	if err != nil {
		return fmt.Errorf("failed to stat store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store path %s is not a directory", s.path)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if s.d == nil {
		return nil, false, fmt.Errorf("store not loaded")
	}
	if !s.d.Has(key) {
		return nil, false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, true, nil
}

func (s *Store) Put(key string, value []byte) error {
	if s.d == nil {
		return fmt.Errorf("store not loaded")
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.d == nil {
		return fmt.Errorf("store not loaded")
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}
