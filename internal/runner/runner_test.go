package runner

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vlm-batch/internal/checkpoint"
	"vlm-batch/internal/config"
	"vlm-batch/internal/dataset"
	"vlm-batch/internal/status"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig(t *testing.T, tasks []int) config.Config {
	t.Helper()
	return config.Config{
		OutputRoot:    t.TempDir(),
		ModelPathName: "gpt-4o",
		Languages:     []string{"English"},
		Tasks:         tasks,
	}
}

func newTestRunner(t *testing.T, cfg config.Config, backend Backend) (*Runner, checkpoint.Store) {
	t.Helper()
	store, err := checkpoint.NewFileStore(testLogger(), cfg.CheckpointDir())
	require.NoError(t, err)
	return New(testLogger(), cfg, store, backend, status.NewTracker()), store
}

func testItems() []dataset.Item {
	return []dataset.Item{
		{ID: 1, ImagePath: "img1.png"},
		{ID: 2, ImagePath: "img2.png", TextPath: "text2.txt"},
		{ID: 3, ImagePath: "img3.png"},
	}
}

func readResultsFile(t *testing.T, cfg config.Config, task int) map[string]string {
	t.Helper()
	path := filepath.Join(cfg.ResultsDir(), "English", checkpoint.ResultsFileName(cfg.ModelPathName, "En", task))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestRunProcessesAllItems(t *testing.T) {
	cfg := testConfig(t, []int{1})
	backend := &MockBackend{}
	backend.On("Name").Return("mock")
	backend.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(Request)
			emit := args.Get(2).(EmitFunc)
			results := checkpoint.Results{}
			for _, item := range req.Items {
				results[item.Key()] = "response for " + item.Key()
			}
			require.NoError(t, emit(context.Background(), results))
		}).
		Return(nil)

	r, _ := newTestRunner(t, cfg, backend)
	require.NoError(t, r.Run(context.Background(), testItems()))

	out := readResultsFile(t, cfg, 1)
	assert.Len(t, out, 3)
	assert.Equal(t, "response for 2", out["2"])
	backend.AssertExpectations(t)
}

func TestRunSkipsCheckpointedItems(t *testing.T) {
	cfg := testConfig(t, []int{1})
	backend := &MockBackend{}
	backend.On("Name").Return("mock")

	var gotItems []dataset.Item
	backend.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(Request)
			gotItems = req.Items
			emit := args.Get(2).(EmitFunc)
			results := checkpoint.Results{}
			for _, item := range req.Items {
				results[item.Key()] = "fresh"
			}
			require.NoError(t, emit(context.Background(), results))
		}).
		Return(nil)

	r, store := newTestRunner(t, cfg, backend)
	require.NoError(t, store.Save(context.Background(), "En", 1, checkpoint.Results{"1": "from previous run"}))

	require.NoError(t, r.Run(context.Background(), testItems()))

	require.Len(t, gotItems, 2)
	assert.Equal(t, 2, gotItems[0].ID)
	assert.Equal(t, 3, gotItems[1].ID)

	out := readResultsFile(t, cfg, 1)
	assert.Equal(t, "from previous run", out["1"])
	assert.Equal(t, "fresh", out["2"])
}

func TestRunAllCheckpointedSkipsBackend(t *testing.T) {
	cfg := testConfig(t, []int{1})
	backend := &MockBackend{}
	backend.On("Name").Return("mock")

	r, store := newTestRunner(t, cfg, backend)
	done := checkpoint.Results{"1": "a", "2": "b", "3": "c"}
	require.NoError(t, store.Save(context.Background(), "En", 1, done))

	require.NoError(t, r.Run(context.Background(), testItems()))

	backend.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, readResultsFile(t, cfg, 1), 3)
}

func TestRunImageTextTaskUsesPairedItems(t *testing.T) {
	cfg := testConfig(t, []int{6})
	backend := &MockBackend{}
	backend.On("Name").Return("mock")

	var gotItems []dataset.Item
	backend.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotItems = args.Get(1).(Request).Items
		}).
		Return(nil)

	r, _ := newTestRunner(t, cfg, backend)
	require.NoError(t, r.Run(context.Background(), testItems()))

	require.Len(t, gotItems, 1)
	assert.Equal(t, 2, gotItems[0].ID)
}

func TestRunTaskFailureContinuesAndKeepsPartials(t *testing.T) {
	cfg := testConfig(t, []int{1, 2})
	backend := &MockBackend{}
	backend.On("Name").Return("mock")

	backend.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			// Emit one result before failing.
			emit := args.Get(2).(EmitFunc)
			require.NoError(t, emit(context.Background(), checkpoint.Results{"1": "partial"}))
		}).
		Return(errors.New("batch exploded")).Once()
	backend.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(Request)
			emit := args.Get(2).(EmitFunc)
			results := checkpoint.Results{}
			for _, item := range req.Items {
				results[item.Key()] = "ok"
			}
			require.NoError(t, emit(context.Background(), results))
		}).
		Return(nil).Once()

	r, store := newTestRunner(t, cfg, backend)
	require.NoError(t, r.Run(context.Background(), testItems()))

	// The failed task still wrote its partial progress.
	out := readResultsFile(t, cfg, 1)
	assert.Equal(t, map[string]string{"1": "partial"}, out)

	done, err := store.Load(context.Background(), "En", 1)
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Results{"1": "partial"}, done)

	// The next task ran to completion.
	assert.Len(t, readResultsFile(t, cfg, 2), 3)
}

func TestRunCancelledContext(t *testing.T) {
	cfg := testConfig(t, []int{1})
	backend := &MockBackend{}
	backend.On("Name").Return("mock")
	backend.On("Process", mock.Anything, mock.Anything, mock.Anything).Return(context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, store := newTestRunner(t, cfg, backend)
	err := r.Run(ctx, testItems())
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing was emitted before the cancellation, so the checkpoint must
	// stay empty and the next run resends every item.
	done, err := store.Load(context.Background(), "En", 1)
	require.NoError(t, err)
	assert.Empty(t, done)
}

func TestRunUnknownLanguageSkipped(t *testing.T) {
	cfg := testConfig(t, []int{1})
	cfg.Languages = []string{"Klingon"}
	backend := &MockBackend{}
	backend.On("Name").Return("mock")

	r, _ := newTestRunner(t, cfg, backend)
	require.NoError(t, r.Run(context.Background(), testItems()))
	backend.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}
