package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"vlm-batch/internal/checkpoint"
	"vlm-batch/internal/config"
	"vlm-batch/internal/dataset"
	"vlm-batch/internal/prompt"
	"vlm-batch/internal/status"
)

// Request is one unit of backend work: every remaining item for a
// (language, task) pair.
type Request struct {
	Language prompt.Language
	Task     prompt.Task
	Items    []dataset.Item
}

// EmitFunc hands a batch of completed results back to the runner, which
// merges them into the checkpoint before the backend continues.
type EmitFunc func(ctx context.Context, results checkpoint.Results) error

// Backend generates responses for a request, calling emit as results become
// available so progress survives interruption.
type Backend interface {
	Name() string
	Process(ctx context.Context, req Request, emit EmitFunc) error
}

// Runner drives the language × task loop over a dataset.
type Runner struct {
	log     *slog.Logger
	cfg     config.Config
	store   checkpoint.Store
	backend Backend
	tracker *status.Tracker
}

func New(log *slog.Logger, cfg config.Config, store checkpoint.Store, backend Backend, tracker *status.Tracker) *Runner {
	return &Runner{log: log, cfg: cfg, store: store, backend: backend, tracker: tracker}
}

// Run processes every configured language and task over the dataset items.
// A failed task is logged and the loop moves on; only context cancellation
// aborts the run.
func (r *Runner) Run(ctx context.Context, items []dataset.Item) error {
	withText := dataset.WithText(items)
	r.log.Info("starting run",
		"backend", r.backend.Name(),
		"items", len(items),
		"image_text_pairs", len(withText),
		"languages", r.cfg.Languages,
		"tasks", r.cfg.Tasks,
	)

	for _, name := range r.cfg.Languages {
		lang, ok := prompt.Get(name)
		if !ok {
			r.log.Warn("unknown language, skipping", "language", name)
			continue
		}
		for _, taskNum := range r.cfg.Tasks {
			task := prompt.Task(taskNum)

			// Image-only tasks run over every image; image-text tasks only
			// over items that have a paired text file.
			pool := items
			if task.NeedsText() {
				pool = withText
			}

			if err := r.runTask(ctx, lang, task, pool); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.log.Error("task failed, moving on", "language", lang.Name, "task", int(task), "err", err)
			}
		}
	}

	r.tracker.Finish()
	r.log.Info("run complete")
	return ctx.Err()
}

func (r *Runner) runTask(ctx context.Context, lang prompt.Language, task prompt.Task, pool []dataset.Item) error {
	done, err := r.store.Load(ctx, lang.Code, int(task))
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	remaining := checkpoint.Remaining(pool, done)
	r.tracker.StartTask(lang.Name, int(task), len(done), len(pool))

	if len(remaining) == 0 {
		r.log.Info("all items already processed", "language", lang.Name, "task", int(task))
		return r.writeResults(lang, task, done)
	}

	r.log.Info("processing task",
		"language", lang.Name,
		"task", int(task),
		"remaining", len(remaining),
		"checkpointed", len(done),
	)

	emit := func(ctx context.Context, results checkpoint.Results) error {
		done.Merge(results)
		r.tracker.Add(len(results))
		if err := r.store.Save(ctx, lang.Code, int(task), done); err != nil {
			// A lost checkpoint write costs re-sent requests, not correctness.
			r.log.Warn("failed to save checkpoint", "language", lang.Name, "task", int(task), "err", err)
		}
		return nil
	}

	if err := r.backend.Process(ctx, Request{Language: lang, Task: task, Items: remaining}, emit); err != nil {
		// Results emitted before the failure are already checkpointed; write
		// what we have before reporting the error.
		if werr := r.writeResults(lang, task, done); werr != nil {
			r.log.Warn("failed to write partial results", "language", lang.Name, "task", int(task), "err", werr)
		}
		return err
	}
	return r.writeResults(lang, task, done)
}

func (r *Runner) writeResults(lang prompt.Language, task prompt.Task, results checkpoint.Results) error {
	path := filepath.Join(
		r.cfg.ResultsDir(),
		lang.Name,
		checkpoint.ResultsFileName(r.cfg.ModelPathName, lang.Code, int(task)),
	)
	if err := checkpoint.WriteResultsFile(path, results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	r.log.Info("saved results", "language", lang.Name, "task", int(task), "items", len(results), "path", path)
	return nil
}
