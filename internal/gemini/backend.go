package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"vlm-batch/internal/checkpoint"
	"vlm-batch/internal/config"
	"vlm-batch/internal/dataset"
	"vlm-batch/internal/prompt"
	"vlm-batch/internal/retry"
	"vlm-batch/internal/runner"
)

// flushEvery is how many completions accumulate before the checkpoint is
// flushed. Small enough that an interrupted run loses little work.
const flushEvery = 10

// Backend generates responses one request at a time with bounded
// concurrency. Unlike batch jobs there is nothing to poll; each item is a
// synchronous generateContent call.
type Backend struct {
	log    *slog.Logger
	client *Client
	cfg    config.Config
}

func New(log *slog.Logger, cfg config.Config) (*Backend, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini backend")
	}
	return &Backend{
		log:    log,
		client: NewClient(cfg.GeminiKey, cfg.ModelName),
		cfg:    cfg,
	}, nil
}

func (b *Backend) Name() string { return "gemini" }

type completion struct {
	key  string
	text string
}

// Process fans the items out over a bounded worker group and funnels
// completions back through a single collector so emit is never called
// concurrently.
func (b *Backend) Process(ctx context.Context, req runner.Request, emit runner.EmitFunc) error {
	// Buffered so workers never block on the collector.
	completions := make(chan completion, len(req.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Concurrency)

	go func() {
		for _, item := range req.Items {
			g.Go(func() error {
				text, err := b.generateOne(gctx, item, req.Language, req.Task)
				if err != nil {
					// Cancelled mid-flight. The item stays out of the
					// checkpoint so the next run resends it.
					return err
				}
				completions <- completion{key: item.Key(), text: text}
				return nil
			})
		}
		g.Wait()
		close(completions)
	}()

	pending := checkpoint.Results{}
	for c := range completions {
		pending[c.key] = c.text
		if len(pending) >= flushEvery {
			if err := emit(ctx, pending); err != nil {
				return err
			}
			pending = checkpoint.Results{}
		}
	}

	if len(pending) > 0 {
		if err := emit(ctx, pending); err != nil {
			return err
		}
	}
	return g.Wait()
}

// generateOne renders the prompt for an item and calls the API with
// retries. API failures come back as error-text results so the item is
// recorded and the run moves on; a non-nil error means the context was
// cancelled and the item must NOT be recorded, or resume would skip it.
func (b *Backend) generateOne(ctx context.Context, item dataset.Item, lang prompt.Language, task prompt.Task) (string, error) {
	req, err := b.buildRequest(item, lang, task)
	if err != nil {
		b.log.Warn("failed to build request", "id", item.ID, "err", err)
		return fmt.Sprintf("Error: %v", err), nil
	}

	var lastErr error
	for attempt := 0; attempt <= b.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := retry.Sleep(ctx, retry.ExponentialBackoff(attempt-1, b.cfg.RetryBaseDelay)); err != nil {
				return "", err
			}
		}

		resp, err := b.client.GenerateContent(ctx, *req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			b.log.Warn("generate attempt failed", "id", item.ID, "attempt", attempt+1, "err", err)
			continue
		}

		text := resp.Text()
		if text == "" {
			b.log.Warn("empty response", "id", item.ID, "finish_reason", resp.FinishReason())
			return fmt.Sprintf("Error: No content in response (Finish reason: %s)", resp.FinishReason()), nil
		}
		return text, nil
	}
	return fmt.Sprintf("Error: %v", lastErr), nil
}

func (b *Backend) buildRequest(item dataset.Item, lang prompt.Language, task prompt.Task) (*Request, error) {
	var textContent string
	if task.NeedsText() {
		text, err := dataset.ReadText(item.TextPath)
		if err != nil {
			return nil, err
		}
		textContent = text
	}

	userPrompt, err := lang.Render(task, textContent)
	if err != nil {
		return nil, err
	}

	encoded, mime, err := dataset.EncodeImage(item.ImagePath)
	if err != nil {
		return nil, err
	}

	return &Request{
		Contents: []Content{{
			Role: "user",
			Parts: []Part{
				{Text: userPrompt},
				{InlineData: &InlineData{MIMEType: mime, Data: encoded}},
			},
		}},
		SystemInstruction: &Content{
			Parts: []Part{{Text: lang.SystemPrompt}},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     b.cfg.Temperature,
			MaxOutputTokens: b.cfg.MaxTokens,
		},
	}, nil
}
