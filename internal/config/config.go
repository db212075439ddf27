package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration for a generation run. Defaults mirror
// the standard ImagesTextEn1K setup.
type Config struct {
	// Dataset layout
	DataRoot    string `env:"DATA_ROOT" envDefault:"./data"`
	DatasetName string `env:"DATASET_NAME" envDefault:"ImagesTextEn1K"`
	OutputRoot  string `env:"OUTPUT_ROOT" envDefault:"./outputs"`

	// Backend selection and model naming. ModelPathName is the directory-safe
	// label used for output subfolders; ModelName is what goes on the wire.
	Backend       string `env:"BACKEND" envDefault:"openai" validate:"oneof=openai gemini"`
	ModelName     string `env:"MODEL_NAME" envDefault:"gpt-4o-2024-08-06"`
	ModelPathName string `env:"MODEL_PATH_NAME" envDefault:"gpt-4o"`

	// Credentials (checked per backend by the deps builder, not here)
	OpenAIKey string `env:"OPENAI_API_KEY"`
	GeminiKey string `env:"GEMINI_API_KEY"`

	// Generation parameters
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"1024" validate:"gt=0"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0"`

	// Batch / concurrency knobs
	BatchSize   int `env:"BATCH_SIZE" envDefault:"200" validate:"gt=0"`
	Concurrency int `env:"CONCURRENCY" envDefault:"10" validate:"gt=0"`

	// Retry and polling
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3" validate:"gte=0"`
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"5s"`
	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"60s"`
	MaxPolls       int           `env:"MAX_POLLS" envDefault:"120" validate:"gt=0"`

	// Checkpointing
	CheckpointProvider string `env:"CHECKPOINT_PROVIDER" envDefault:"file" validate:"oneof=file redis"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`

	// Run scope
	DatasetLimit int      `env:"DATASET_LIMIT" envDefault:"1000" validate:"gt=0"`
	Languages    []string `env:"LANGUAGES" envSeparator:"," envDefault:"English,Japanese,Swahili,Urdu"`
	Tasks        []int    `env:"TASKS" envSeparator:"," envDefault:"1,2,3,4,5,6,7,8"`

	// Status server
	StatusPort int    `env:"STATUS_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DataDir is the dataset directory holding images and paired text files.
func (c Config) DataDir() string {
	return filepath.Join(c.DataRoot, c.DatasetName)
}

// ResultsDir is the per-model results directory. Final result files land in
// a per-language subdirectory beneath it.
func (c Config) ResultsDir() string {
	return filepath.Join(c.OutputRoot, c.ModelPathName, "results_1shot_rationales")
}

// CheckpointDir holds the per-(language, task) checkpoint files.
func (c Config) CheckpointDir() string {
	return filepath.Join(c.OutputRoot, c.ModelPathName, "checkpoints_1shot_rationales")
}

// BatchFilesDir is the staging area for JSONL batch request files shared
// between runs.
func (c Config) BatchFilesDir() string {
	return filepath.Join(c.OutputRoot, "common_batch_files", "batch_files")
}
