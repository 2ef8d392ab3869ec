// Package blob provides a file-based implementation of domain.BlobStore.
// Each key maps to one JSON file in the data directory; writes go to a
// temp file and are renamed into place so a crash never leaves a
// half-written blob behind. Cross-process access is serialized with a
// file lock.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/deskhub/deskhub/internal/domain"
)

const lockFileName = ".lock"

// Store implements domain.BlobStore using one file per key.
type Store struct {
	dir      string
	lockPath string
}

// New creates a Store rooted at the given data directory.
// The directory does not need to exist; Initialize creates it.
func New(dir string) *Store {
	return &Store{
		dir:      dir,
		lockPath: filepath.Join(dir, lockFileName),
	}
}

// Dir returns the data directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// IsInitialized checks if the data directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Initialize creates the data directory if it doesn't exist.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// keyPath returns the file path for a key.
func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the blob stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, domain.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the blob stored under key.
func (s *Store) Put(key string, data []byte) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	path := s.keyPath(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp blob %q: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp blob %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key, if present.
func (s *Store) Delete(key string) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	err = os.Remove(s.keyPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.BlobStore        = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
