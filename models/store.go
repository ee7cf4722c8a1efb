package models

import "sync"

// Store holds the directory currently being served. The dataset can be
// swapped while requests are in flight.
type Store struct {
	mu  sync.RWMutex
	dir *Directory
}

func NewStore(dir *Directory) *Store {
	return &Store{dir: dir}
}

// Directory returns the current directory snapshot.
func (s *Store) Directory() *Directory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dir
}

func (s *Store) Replace(dir *Directory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dir = dir
}

// Reload loads path and replaces the current directory. On error the
// previous directory stays in place.
func (s *Store) Reload(path string) error {
	dir, err := LoadDirectory(path)
	if err != nil {
		return err
	}

	s.Replace(dir)
	return nil
}
