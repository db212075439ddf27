package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"vlm-batch/internal/app"
	"vlm-batch/internal/dataset"
	"vlm-batch/internal/runner"
	"vlm-batch/internal/status"
)

func main() {
	deps, err := app.Build("gemini")
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("async generation starting", "backend", deps.Backend.Name(), "model", deps.Config.ModelName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	items, err := dataset.Scan(deps.Log, deps.Config.DataDir(), deps.Config.DatasetLimit)
	if err != nil {
		deps.Log.Error("failed to scan dataset", "dir", deps.Config.DataDir(), "err", err)
		deps.Close()
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return status.Serve(gctx, deps.Log, deps.Config.StatusPort, deps.Tracker)
	})

	g.Go(func() error {
		// The status server shuts down once the run ends.
		defer stop()
		r := runner.New(deps.Log, deps.Config, deps.Store, deps.Backend, deps.Tracker)
		return r.Run(gctx, items)
	})

	err = g.Wait()
	deps.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		deps.Log.Error("generation run failed", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("generation run finished")
}
