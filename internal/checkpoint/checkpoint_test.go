package checkpoint

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vlm-batch/internal/dataset"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewFileStore(log, filepath.Join(t.TempDir(), "checkpoints"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved := Results{"1": "first response", "2": "second response"}
	if err := store.Save(ctx, "En", 3, saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "En", 3)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 || loaded["1"] != "first response" || loaded["2"] != "second response" {
		t.Errorf("unexpected loaded results: %v", loaded)
	}
}

func TestFileStoreMissingCheckpointIsEmpty(t *testing.T) {
	store := testStore(t)

	loaded, err := store.Load(context.Background(), "Jp", 1)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty results, got %v", loaded)
	}
}

func TestFileStoreCorruptCheckpointStartsFresh(t *testing.T) {
	store := testStore(t)
	path := store.path("Sw", 2)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to plant corrupt file: %v", err)
	}

	loaded, err := store.Load(context.Background(), "Sw", 2)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected fresh start, got %v", loaded)
	}
}

func TestFileStoreCheckpointsAreIsolated(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "En", 1, Results{"1": "en task1"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "En", 2, Results{"1": "en task2"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "Ur", 1, Results{"1": "ur task1"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(ctx, "En", 2)
	if err != nil {
		t.Fatal(err)
	}
	if loaded["1"] != "en task2" {
		t.Errorf("checkpoints bled across (language, task): %v", loaded)
	}
}

func TestRemaining(t *testing.T) {
	items := []dataset.Item{{ID: 1}, {ID: 2}, {ID: 10}}
	done := Results{"1": "done", "10": "done"}

	remaining := Remaining(items, done)
	if len(remaining) != 1 || remaining[0].ID != 2 {
		t.Errorf("unexpected remaining set: %v", remaining)
	}
}

func TestRemainingAllDone(t *testing.T) {
	items := []dataset.Item{{ID: 1}}
	if got := Remaining(items, Results{"1": "done"}); len(got) != 0 {
		t.Errorf("expected empty remaining, got %v", got)
	}
}

func TestMergeNeverRemoves(t *testing.T) {
	dst := Results{"1": "keep"}
	dst.Merge(Results{"2": "new"})
	if len(dst) != 2 || dst["1"] != "keep" || dst["2"] != "new" {
		t.Errorf("unexpected merge result: %v", dst)
	}
}

func TestResultsFileName(t *testing.T) {
	got := ResultsFileName("gpt-4o", "En", 5)
	want := "results_gpt-4o_1shot_En_task5_Rationales.json"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWriteResultsFileSortedNumerically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.json")
	results := Results{"10": "ten", "2": "two", "1": "one"}

	if err := WriteResultsFile(path, results); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	// Keys must appear in numeric order, not lexicographic.
	content := string(data)
	i1 := strings.Index(content, `"1"`)
	i2 := strings.Index(content, `"2"`)
	i10 := strings.Index(content, `"10"`)
	if i1 == -1 || i2 == -1 || i10 == -1 {
		t.Fatalf("missing keys in output: %s", content)
	}
	if !(i1 < i2 && i2 < i10) {
		t.Errorf("keys out of numeric order: %s", content)
	}

	// And the file must still be valid JSON.
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["10"] != "ten" {
		t.Errorf("unexpected decoded value: %v", decoded)
	}
}

func TestWriteResultsFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := WriteResultsFile(path, Results{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}
