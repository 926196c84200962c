package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dungeonhub/pkg/models"
)

// FileStore keeps the community blob in a local JSON file. Used for local
// development and tests; deployments use the S3 store.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Read(ctx context.Context) (*models.MonsterDexData, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	var data models.MonsterDexData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return &data, nil
}

func (s *FileStore) Write(ctx context.Context, data *models.MonsterDexData) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("ensure blob dir: %w", err)
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode combined data: %w", err)
	}

	// write-then-rename so a crashed write never leaves a torn file
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
