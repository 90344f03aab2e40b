// Package storage keeps uploaded post media outside the database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"skillshare/internal/observability"

	"github.com/google/uuid"
)

// ErrInvalidName is returned when a stored name would escape the store root.
var ErrInvalidName = errors.New("invalid media name")

// MediaStore saves and removes media blobs referenced by posts.
type MediaStore interface {
	// Save writes r under a newly generated name and returns that name.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Delete removes a stored blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	Root() string
}

// LocalStore writes media to a directory on the local filesystem.
type LocalStore struct {
	root string
}

// NewLocalStore returns a LocalStore rooted at dir. The directory is created on first write.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: filepath.Clean(dir)}
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (name string, err error) {
	defer func() { observeMedia("save", err) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name = GenerateName(originalName)
	path := filepath.Join(s.root, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close media file: %w", err)
	}
	return name, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) (err error) {
	defer func() { observeMedia("delete", err) }()

	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

func (s *LocalStore) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, name), nil
}

// GenerateName returns "<uuid>_<base name>" for an uploaded file name.
func GenerateName(originalName string) string {
	base := sanitize(originalName)
	if base == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "_" + base
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(strings.TrimSpace(name))
	switch base {
	case ".", "/", "..":
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, base)
}

func observeMedia(op string, err error) {
	observability.MediaOperations.WithLabelValues(op, observability.Result(err)).Inc()
}

// MemoryStore keeps media in memory. Service tests use it in place of LocalStore.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

func (m *MemoryStore) Root() string { return "" }

func (m *MemoryStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := GenerateName(originalName)
	m.mu.Lock()
	m.files[name] = data
	m.mu.Unlock()
	return name, nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.files, name)
	m.mu.Unlock()
	return nil
}

// Has reports whether name is currently stored.
func (m *MemoryStore) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

// Len returns the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
