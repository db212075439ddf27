package openaibatch

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"vlm-batch/internal/checkpoint"
	"vlm-batch/internal/config"
	"vlm-batch/internal/dataset"
	"vlm-batch/internal/retry"
	"vlm-batch/internal/runner"
)

// keepBatchFiles is how many staged JSONL files survive cleanup.
const keepBatchFiles = 10

// Backend submits work through the OpenAI Batch API: items are chunked into
// JSONL files, uploaded, run as batch jobs and polled to completion.
type Backend struct {
	log    *slog.Logger
	client *openai.Client
	cfg    config.Config
}

func New(log *slog.Logger, cfg config.Config) (*Backend, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
	}
	cli := openai.NewClient(option.WithAPIKey(cfg.OpenAIKey))
	return &Backend{log: log, client: &cli, cfg: cfg}, nil
}

func (b *Backend) Name() string { return "openai-batch" }

// Process runs the request chunk by chunk. A chunk that exhausts its retries
// is logged and skipped; its items stay out of the checkpoint and are picked
// up by the next run.
func (b *Backend) Process(ctx context.Context, req runner.Request, emit runner.EmitFunc) error {
	var failedChunks int
	for start := 0; start < len(req.Items); start += b.cfg.BatchSize {
		end := min(start+b.cfg.BatchSize, len(req.Items))
		chunk := req.Items[start:end]
		b.log.Info("preparing batch chunk",
			"language", req.Language.Name,
			"task", int(req.Task),
			"items", len(chunk),
			"offset", start,
		)

		if err := b.processChunk(ctx, req, chunk, emit); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failedChunks++
			b.log.Error("batch chunk failed, moving to next", "offset", start, "err", err)
		}
	}

	b.cleanupBatchFiles()

	if failedChunks > 0 {
		return fmt.Errorf("%d batch chunk(s) failed", failedChunks)
	}
	return nil
}

func (b *Backend) processChunk(ctx context.Context, req runner.Request, chunk []dataset.Item, emit runner.EmitFunc) error {
	filePath, idMap, err := b.writeBatchFile(req, chunk)
	if err != nil {
		return err
	}
	if len(idMap) == 0 {
		if err := os.Remove(filePath); err != nil {
			b.log.Warn("failed to remove empty batch file", "path", filePath, "err", err)
		}
		return fmt.Errorf("no usable items in chunk")
	}

	fileID, err := b.uploadBatchFile(ctx, filePath)
	if err != nil {
		return err
	}
	b.log.Info("batch file uploaded", "file_id", fileID, "items", len(idMap))

	for attempt := 0; attempt <= b.cfg.MaxRetries; attempt++ {
		results, err := b.runBatch(ctx, fileID, idMap)
		if err == nil {
			b.log.Info("batch chunk complete", "items", len(results))
			return emit(ctx, results)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.log.Warn("batch attempt failed", "attempt", attempt+1, "max", b.cfg.MaxRetries+1, "err", err)
		if attempt < b.cfg.MaxRetries {
			if err := retry.Sleep(ctx, retry.ExponentialBackoff(attempt, b.cfg.RetryBaseDelay)); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("batch failed after %d attempts", b.cfg.MaxRetries+1)
}

// writeBatchFile stages the chunk as a JSONL file in the batch directory and
// returns the custom_id → item key map. Items that fail to encode are logged
// and left for a later run.
func (b *Backend) writeBatchFile(req runner.Request, chunk []dataset.Item) (string, map[string]string, error) {
	if err := os.MkdirAll(b.cfg.BatchFilesDir(), 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create batch directory: %w", err)
	}

	prefix := "batch_img_only_"
	if req.Task.NeedsText() {
		prefix = "batch_img_text_"
	}
	tmp, err := os.CreateTemp(b.cfg.BatchFilesDir(), prefix+"*.jsonl")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create batch file: %w", err)
	}
	defer tmp.Close()

	idMap := make(map[string]string, len(chunk))
	enc := newLineWriter(tmp)
	for _, item := range chunk {
		line, err := buildRequestLine(item, req.Language, req.Task, b.cfg.ModelName, b.cfg.MaxTokens, b.cfg.Temperature)
		if err != nil {
			b.log.Warn("skipping item", "id", item.ID, "err", err)
			continue
		}
		if err := enc.write(line); err != nil {
			os.Remove(tmp.Name())
			return "", nil, fmt.Errorf("failed to write batch line: %w", err)
		}
		idMap[line.CustomID] = item.Key()
	}
	if err := enc.flush(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to flush batch file: %w", err)
	}
	return tmp.Name(), idMap, nil
}

// uploadBatchFile uploads the staged file and removes it afterwards; the
// uploaded copy is the one that matters from here on.
func (b *Backend) uploadBatchFile(ctx context.Context, path string) (string, error) {
	defer func() {
		if err := os.Remove(path); err != nil {
			b.log.Warn("failed to remove staged batch file", "path", path, "err", err)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	file, err := b.client.Files.New(ctx, openai.FileNewParams{
		File:    f,
		Purpose: openai.FilePurposeBatch,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload batch file: %w", err)
	}
	return file.ID, nil
}

// runBatch creates one batch job from an uploaded file and sees it through
// to a terminal state.
func (b *Backend) runBatch(ctx context.Context, fileID string, idMap map[string]string) (checkpoint.Results, error) {
	batch, err := b.client.Batches.New(ctx, openai.BatchNewParams{
		InputFileID:      fileID,
		Endpoint:         openai.BatchNewParamsEndpointV1ChatCompletions,
		CompletionWindow: openai.BatchNewParamsCompletionWindow24h,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create batch job: %w", err)
	}
	b.log.Info("created batch job", "batch_id", batch.ID)

	final, err := b.pollBatch(ctx, batch.ID)
	if err != nil {
		return nil, err
	}

	switch final.Status {
	case openai.BatchStatusCompleted:
		if final.OutputFileID == "" {
			b.reportErrorFile(ctx, final.ErrorFileID, idMap)
			return nil, fmt.Errorf("batch %s completed without an output file", final.ID)
		}
		return b.collectResults(ctx, final.OutputFileID, idMap)
	case openai.BatchStatusFailed, openai.BatchStatusCancelled, openai.BatchStatusExpired:
		b.reportErrorFile(ctx, final.ErrorFileID, idMap)
		return nil, fmt.Errorf("batch %s ended %s", final.ID, final.Status)
	default:
		return nil, fmt.Errorf("batch %s in unexpected state %s", final.ID, final.Status)
	}
}

// pollBatch checks the job until it reaches a terminal state or the poll
// budget runs out.
func (b *Backend) pollBatch(ctx context.Context, batchID string) (*openai.Batch, error) {
	for i := 0; i < b.cfg.MaxPolls; i++ {
		batch, err := b.client.Batches.Get(ctx, batchID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.log.Warn("failed to poll batch, retrying", "batch_id", batchID, "err", err)
			if err := retry.Sleep(ctx, 2*b.cfg.PollInterval); err != nil {
				return nil, err
			}
			continue
		}

		b.log.Info("batch status",
			"batch_id", batchID,
			"status", batch.Status,
			"poll", i+1,
			"completed", batch.RequestCounts.Completed,
			"failed", batch.RequestCounts.Failed,
			"total", batch.RequestCounts.Total,
		)

		switch batch.Status {
		case openai.BatchStatusCompleted, openai.BatchStatusFailed, openai.BatchStatusCancelled, openai.BatchStatusExpired:
			return batch, nil
		}

		if err := retry.Sleep(ctx, b.cfg.PollInterval); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("batch %s still not terminal after %d polls", batchID, b.cfg.MaxPolls)
}

// collectResults downloads the output file and maps each line back to its
// dataset item.
func (b *Backend) collectResults(ctx context.Context, outputFileID string, idMap map[string]string) (checkpoint.Results, error) {
	resp, err := b.client.Files.Content(ctx, outputFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download batch output: %w", err)
	}
	defer resp.Body.Close()

	results := checkpoint.Results{}
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		if raw == "" {
			continue
		}
		customID, result, err := parseResponseLine(raw)
		if err != nil {
			b.log.Warn("skipping malformed output line", "err", err)
			continue
		}
		itemKey, ok := idMap[customID]
		if !ok {
			b.log.Warn("output line for unknown custom_id", "custom_id", customID)
			continue
		}
		results[itemKey] = result
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch output: %w", err)
	}
	return results, nil
}

// reportErrorFile logs the per-request errors of a failed batch.
func (b *Backend) reportErrorFile(ctx context.Context, errorFileID string, idMap map[string]string) {
	if errorFileID == "" {
		b.log.Warn("batch reported no error file")
		return
	}
	resp, err := b.client.Files.Content(ctx, errorFileID)
	if err != nil {
		b.log.Warn("failed to download batch error file", "err", err)
		return
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	count := 0
	for scanner.Scan() {
		raw := scanner.Text()
		if raw == "" {
			continue
		}
		customID, result, err := parseResponseLine(raw)
		if err != nil {
			b.log.Warn("malformed error line", "err", err)
			continue
		}
		count++
		b.log.Warn("batch request error", "custom_id", customID, "item", idMap[customID], "detail", result)
	}
	b.log.Warn("batch errors reported", "count", count)
}

// cleanupBatchFiles trims stale staged files, keeping the newest few for
// inspection.
func (b *Backend) cleanupBatchFiles() {
	pattern := filepath.Join(b.cfg.BatchFilesDir(), "*.jsonl")
	files, err := filepath.Glob(pattern)
	if err != nil || len(files) <= keepBatchFiles {
		return
	}

	type fileAge struct {
		path string
		mod  int64
	}
	ages := make([]fileAge, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		ages = append(ages, fileAge{path: f, mod: info.ModTime().UnixNano()})
	}
	sort.Slice(ages, func(a, b int) bool { return ages[a].mod > ages[b].mod })

	for _, f := range ages[keepBatchFiles:] {
		if err := os.Remove(f.path); err != nil {
			b.log.Warn("failed to remove old batch file", "path", f.path, "err", err)
		}
	}
}
