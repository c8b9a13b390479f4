// Package store persists the five entity collections and the scoreboard
// display preference through a pluggable key-value storage port.
// File: store/storage.go
package store

import (
	"os"
	"path/filepath"
	"sync"

	"go-hb-scoreboard/logger"
)

// Storage is the key-value persistence port. Load returns nil data (not an
// error) when the key has never been written. Implementations replace the
// whole value on Save; there is no partial update.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// ------------------- file-backed storage -------------------

// FileStorage keeps one JSON file per collection key under a data directory.
// Writes go to a temp file first and are moved into place, so a crashed write
// never leaves a half-written collection behind.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates the data directory if needed and returns a storage
// handle rooted at it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Load reads the stored bytes for key. A missing file is not an error; the
// caller treats nil as an empty collection.
func (fs *FileStorage) Load(key string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save atomically replaces the stored bytes for key.
func (fs *FileStorage) Save(key string, data []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tmp, err := os.CreateTemp(fs.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fs.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	logger.Debug.Printf("[FileStorage.Save] wrote %d bytes to key=%s", len(data), key)
	return nil
}

// ------------------- in-memory storage -------------------

// MemoryStorage is a Storage kept entirely in memory. Used by tests and
// available for ephemeral runs.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Load returns the stored bytes for key, nil if never written.
func (ms *MemoryStorage) Load(key string) ([]byte, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.data[key], nil
}

// Save replaces the stored bytes for key.
func (ms *MemoryStorage) Save(key string, data []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	ms.data[key] = cp
	return nil
}
