package devicestore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a Store backed by an append-only JSON-lines file with 0600
// permissions. Each Save appends one record; Load returns the last valid
// line, so a torn final write degrades to the previous record instead of
// corrupting the store.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the per-user location of the device key store.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "discourse-encrypt", "device_keys.jsonl"), nil
}

// NewFileStore creates a file store at the given path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Save appends the record as the new authoritative device key pair.
func (s *FileStore) Save(ctx context.Context, rec KeyPairRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal device record: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open device store: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write device record: %w", err)
	}
	return f.Sync()
}

// Load returns the most recently saved record, or nil when none exists.
func (s *FileStore) Load(ctx context.Context) (*KeyPairRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open device store: %w", err)
	}
	defer f.Close()

	var last *KeyPairRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec KeyPairRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// Skip torn or corrupt lines; older records stay valid.
			continue
		}
		last = &rec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read device store: %w", err)
	}
	return last, nil
}

// Clear removes all saved records.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear device store: %w", err)
	}
	return nil
}
