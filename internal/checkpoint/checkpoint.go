package checkpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"vlm-batch/internal/dataset"
)

// Results maps item IDs (decimal strings) to generated response text.
type Results map[string]string

// Store persists per-(language, task) progress so interrupted runs resume
// without resending completed items. Implementations must treat a missing
// checkpoint as empty progress.
type Store interface {
	Load(ctx context.Context, langCode string, task int) (Results, error)
	Save(ctx context.Context, langCode string, task int, results Results) error
}

// Remaining filters out items already present in the checkpoint.
func Remaining(items []dataset.Item, done Results) []dataset.Item {
	var out []dataset.Item
	for _, item := range items {
		if _, ok := done[item.Key()]; !ok {
			out = append(out, item)
		}
	}
	return out
}

// Merge copies src entries into dst, never removing existing keys.
func (r Results) Merge(src Results) {
	for k, v := range src {
		r[k] = v
	}
}

// ResultsFileName is the final output filename for a (model, language, task).
func ResultsFileName(modelPathName, langCode string, task int) string {
	return fmt.Sprintf("results_%s_1shot_%s_task%d_Rationales.json", modelPathName, langCode, task)
}

// WriteResultsFile writes the results as a JSON object with keys ordered by
// numeric item ID. encoding/json sorts object keys lexicographically, which
// would put "10" before "2", so the object is assembled by hand.
func WriteResultsFile(path string, results Results) error {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		ai, aerr := strconv.Atoi(keys[a])
		bi, berr := strconv.Atoi(keys[b])
		if aerr != nil || berr != nil {
			return keys[a] < keys[b]
		}
		return ai < bi
	})

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return fmt.Errorf("failed to encode result key: %w", err)
		}
		valJSON, err := json.Marshal(results[k])
		if err != nil {
			return fmt.Errorf("failed to encode result for item %s: %w", k, err)
		}
		buf.WriteString("    ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(valJSON)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write results file %s: %w", path, err)
	}
	return nil
}
