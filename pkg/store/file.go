package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/laneplot/pkg/errors"
)

// FileStore keeps one JSON file per chart in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based chart store.
// If baseDir is empty, defaults to ~/.config/laneplot/charts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "laneplot", "charts")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create chart dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) chartPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(_ context.Context, c *Chart) error {
	if err := ValidateID(c.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal chart")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.chartPath(c.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write chart file")
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Chart, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.chartPath(id), id)
}

func (s *FileStore) read(path, id string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read chart file")
	}
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse chart %s", id)
	}
	return &c, nil
}

// List reads every chart file. Unreadable files are skipped.
func (s *FileStore) List(_ context.Context, limit int) ([]*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read chart dir")
	}

	var out []*Chart
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		c, err := s.read(filepath.Join(s.baseDir, entry.Name()), entry.Name())
		if err != nil {
			continue
		}
		out = append(out, c)
	}

	sortNewestFirst(out)
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.chartPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "remove chart file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding chart files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
