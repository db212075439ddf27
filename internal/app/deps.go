package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"vlm-batch/internal/checkpoint"
	"vlm-batch/internal/config"
	"vlm-batch/internal/gemini"
	"vlm-batch/internal/logger"
	"vlm-batch/internal/openaibatch"
	"vlm-batch/internal/runner"
	"vlm-batch/internal/status"
)

// Deps bundles common runtime dependencies for the generation commands.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Store   checkpoint.Store
	Backend runner.Backend
	Tracker *status.Tracker

	// Close releases held connections, if any.
	Close func() error
}

// Build loads env, config, and shared components. The backend argument pins
// which command the binary is; it overrides any BACKEND env value.
func Build(backend string) (Deps, error) {
	// A .env file is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return Deps{}, err
	}
	cfg.Backend = backend
	log := logger.New(cfg.LogLevel)

	store, closeStore, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize checkpoint store: %w", err)
	}

	b, err := buildBackend(cfg, log)
	if err != nil {
		closeStore()
		return Deps{}, fmt.Errorf("failed to initialize backend: %w", err)
	}

	return Deps{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Backend: b,
		Tracker: status.NewTracker(),
		Close: func() error {
			closeStore()
			return nil
		},
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (checkpoint.Store, func(), error) {
	switch cfg.CheckpointProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("REDIS_ADDR is required when CHECKPOINT_PROVIDER=redis")
		}
		rs, err := checkpoint.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis checkpoint store", "addr", cfg.RedisAddr)
		return rs, func() { rs.Close() }, nil
	case "file":
		fs, err := checkpoint.NewFileStore(log, cfg.CheckpointDir())
		if err != nil {
			return nil, nil, err
		}
		log.Info("using file checkpoint store", "dir", cfg.CheckpointDir())
		return fs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("invalid CHECKPOINT_PROVIDER: %s (valid options: file, redis)", cfg.CheckpointProvider)
	}
}

func buildBackend(cfg config.Config, log *slog.Logger) (runner.Backend, error) {
	switch cfg.Backend {
	case "openai":
		return openaibatch.New(log, cfg)
	case "gemini":
		return gemini.New(log, cfg)
	default:
		return nil, fmt.Errorf("invalid BACKEND: %s (valid options: openai, gemini)", cfg.Backend)
	}
}
