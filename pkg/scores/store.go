package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrStorageUnavailable wraps every failure to read or write a score list.
var ErrStorageUnavailable = errors.New("score storage unavailable")

type Store interface {
	Load() ([]Entry, error)
	Save([]Entry) error
}

// FileStore keeps the list as indented JSON in a single file.
type FileStore struct {
	Path string
}

// DefaultPath returns scores.json inside the per-user config directory for
// app, creating the directory if needed.
func DefaultPath(app string) (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	dir := filepath.Join(root, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return filepath.Join(dir, "scores.json"), nil
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the stored list. A missing file is an empty list.
func (s *FileStore) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, s.Path, err)
	}
	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStorageUnavailable, s.Path, err)
	}
	return rank(list), nil
}

func (s *FileStore) Save(list []Entry) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, s.Path, err)
	}
	return nil
}

// MemoryStore keeps the list in process. Fail makes every call return
// ErrStorageUnavailable.
type MemoryStore struct {
	mu   sync.Mutex
	list []Entry
	Fail bool
}

func NewMemoryStore(list ...Entry) *MemoryStore {
	return &MemoryStore{list: append([]Entry(nil), list...)}
}

func (s *MemoryStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrStorageUnavailable
	}
	return append([]Entry{}, s.list...), nil
}

func (s *MemoryStore) Save(list []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrStorageUnavailable
	}
	s.list = append([]Entry(nil), list...)
	return nil
}

// LoadOrEmpty returns the stored list, or an empty one when the store fails.
func LoadOrEmpty(s Store, logf func(format string, args ...any)) []Entry {
	list, err := s.Load()
	if err != nil {
		if logf != nil {
			logf("scores load failed: %v", err)
		}
		return []Entry{}
	}
	return list
}
