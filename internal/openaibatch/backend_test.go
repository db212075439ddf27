package openaibatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlm-batch/internal/config"
	"vlm-batch/internal/dataset"
	"vlm-batch/internal/prompt"
	"vlm-batch/internal/runner"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(testLogger(), config.Config{})
	assert.ErrorContains(t, err, "OPENAI_API_KEY")

	b, err := New(testLogger(), config.Config{OpenAIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "openai-batch", b.Name())
}

func TestWriteBatchFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{OutputRoot: dir, BatchSize: 200}
	b := &Backend{log: testLogger(), cfg: cfg}

	lang, ok := prompt.Get("English")
	require.True(t, ok)

	good := writeFixtureItem(t, false)
	broken := dataset.Item{ID: 99, ImagePath: filepath.Join(t.TempDir(), "missing.png")}

	req := runner.Request{Language: lang, Task: 1, Items: []dataset.Item{good, broken}}
	path, idMap, err := b.writeBatchFile(req, req.Items)
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Contains(t, filepath.Base(path), "batch_img_only_")

	// The unreadable item is skipped, not fatal.
	require.Len(t, idMap, 1)
	for customID, key := range idMap {
		assert.Contains(t, customID, "img_42_")
		assert.Equal(t, "42", key)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1)
}

func TestWriteBatchFileTextPrefix(t *testing.T) {
	cfg := config.Config{OutputRoot: t.TempDir()}
	b := &Backend{log: testLogger(), cfg: cfg}

	lang, ok := prompt.Get("English")
	require.True(t, ok)

	item := writeFixtureItem(t, true)
	req := runner.Request{Language: lang, Task: 6, Items: []dataset.Item{item}}
	path, idMap, err := b.writeBatchFile(req, req.Items)
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Contains(t, filepath.Base(path), "batch_img_text_")
	assert.Len(t, idMap, 1)
}

func TestProcessChunkAllUnusableRemovesStagedFile(t *testing.T) {
	cfg := config.Config{OutputRoot: t.TempDir()}
	b := &Backend{log: testLogger(), cfg: cfg}

	lang, ok := prompt.Get("English")
	require.True(t, ok)

	// Every item points at a missing image, so the staged file ends up
	// empty and the chunk is rejected before upload.
	broken := []dataset.Item{
		{ID: 1, ImagePath: filepath.Join(t.TempDir(), "a.png")},
		{ID: 2, ImagePath: filepath.Join(t.TempDir(), "b.png")},
	}
	req := runner.Request{Language: lang, Task: 1, Items: broken}

	err := b.processChunk(context.Background(), req, broken, nil)
	assert.ErrorContains(t, err, "no usable items")

	files, globErr := filepath.Glob(filepath.Join(cfg.BatchFilesDir(), "*.jsonl"))
	require.NoError(t, globErr)
	assert.Empty(t, files)
}

func TestCleanupBatchFiles(t *testing.T) {
	cfg := config.Config{OutputRoot: t.TempDir()}
	b := &Backend{log: testLogger(), cfg: cfg}
	require.NoError(t, os.MkdirAll(cfg.BatchFilesDir(), 0o755))

	for i := 0; i < keepBatchFiles+5; i++ {
		path := filepath.Join(cfg.BatchFilesDir(), fmt.Sprintf("batch_img_only_%02d.jsonl", i))
		require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
		// Stagger mtimes so newest-first ordering is deterministic.
		mod := time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}

	b.cleanupBatchFiles()

	files, err := filepath.Glob(filepath.Join(cfg.BatchFilesDir(), "*.jsonl"))
	require.NoError(t, err)
	assert.Len(t, files, keepBatchFiles)

	// The oldest files are the ones removed.
	for _, f := range files {
		assert.NotContains(t, f, "batch_img_only_00.jsonl")
	}
}

func TestCleanupBatchFilesUnderLimit(t *testing.T) {
	cfg := config.Config{OutputRoot: t.TempDir()}
	b := &Backend{log: testLogger(), cfg: cfg}
	require.NoError(t, os.MkdirAll(cfg.BatchFilesDir(), 0o755))

	path := filepath.Join(cfg.BatchFilesDir(), "batch_img_only_keep.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	b.cleanupBatchFiles()

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
