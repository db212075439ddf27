package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON checkpoint file per (language, task) under dir.
type FileStore struct {
	dir string
	log *slog.Logger
}

// NewFileStore creates the checkpoint directory if needed.
func NewFileStore(log *slog.Logger, dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) path(langCode string, task int) string {
	return filepath.Join(s.dir, fmt.Sprintf("checkpoint_task%d_%s.json", task, langCode))
}

// Load reads the checkpoint. A missing or corrupt file starts fresh; corrupt
// files are logged, not fatal, so a damaged checkpoint never blocks a run.
func (s *FileStore) Load(_ context.Context, langCode string, task int) (Results, error) {
	data, err := os.ReadFile(s.path(langCode, task))
	if err != nil {
		if os.IsNotExist(err) {
			return Results{}, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		s.log.Warn("corrupt checkpoint, starting fresh", "lang", langCode, "task", task, "err", err)
		return Results{}, nil
	}
	s.log.Info("loaded checkpoint", "lang", langCode, "task", task, "items", len(results))
	return results, nil
}

// Save writes the full result map. The write goes through a temp file and
// rename so a crash mid-write cannot corrupt the previous checkpoint.
func (s *FileStore) Save(_ context.Context, langCode string, task int, results Results) error {
	data, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	path := s.path(langCode, task)
	tmp, err := os.CreateTemp(s.dir, "checkpoint_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}
