package tokenstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File stores the token in a single file with restricted permissions.
type File struct {
	mu   sync.RWMutex
	path string
}

// FileConfig holds file store configuration.
type FileConfig struct {
	// Path is the token file location (e.g. ~/.glosshouse/token).
	Path string
}

// NewFile creates a file-backed token store. The parent directory is
// created with mode 0700 if it does not exist.
func NewFile(cfg FileConfig) (*File, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("tokenstore: path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("tokenstore: create directory: %w", err)
	}

	return &File{path: path}, nil
}

// Save writes the token with mode 0600.
func (f *File) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	return nil
}

// Load reads the persisted token.
func (f *File) Load(ctx context.Context) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("tokenstore: read: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// Clear removes the token file.
func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tokenstore: delete: %w", err)
	}
	return nil
}
