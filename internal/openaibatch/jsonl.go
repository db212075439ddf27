package openaibatch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"vlm-batch/internal/dataset"
	"vlm-batch/internal/prompt"
)

// RequestLine is one line of a batch input JSONL file.
type RequestLine struct {
	CustomID string      `json:"custom_id"`
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Body     RequestBody `json:"body"`
}

// RequestBody is the chat completion request carried by a batch line.
type RequestBody struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Message is a chat message. Content is a plain string for the system role
// and a []ContentPart for the user role.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal user message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// ResponseLine is one line of a batch output (or error) JSONL file.
type ResponseLine struct {
	CustomID string        `json:"custom_id"`
	Response *LineResponse `json:"response,omitempty"`
	Error    *LineError    `json:"error,omitempty"`
}

type LineResponse struct {
	StatusCode int          `json:"status_code"`
	Body       ResponseBody `json:"body"`
}

type ResponseBody struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

type Choice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type LineError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

const chatCompletionsURL = "/v1/chat/completions"

// lineWriter streams JSONL lines through a buffered writer.
type lineWriter struct {
	buf *bufio.Writer
	enc *json.Encoder
}

func newLineWriter(w io.Writer) *lineWriter {
	buf := bufio.NewWriter(w)
	return &lineWriter{buf: buf, enc: json.NewEncoder(buf)}
}

func (lw *lineWriter) write(v any) error { return lw.enc.Encode(v) }

func (lw *lineWriter) flush() error { return lw.buf.Flush() }

// newCustomID ties a batch line back to a dataset item. The uuid suffix
// keeps IDs unique across retried uploads of the same item.
func newCustomID(item dataset.Item) string {
	kind := "img"
	if item.HasText() {
		kind = "pair"
	}
	return fmt.Sprintf("%s_%d_%s", kind, item.ID, uuid.NewString()[:8])
}

// buildRequestLine renders the prompt for one item and wraps it in the
// batch line envelope.
func buildRequestLine(item dataset.Item, lang prompt.Language, task prompt.Task, model string, maxTokens int, temperature float64) (RequestLine, error) {
	var textContent string
	if task.NeedsText() {
		text, err := dataset.ReadText(item.TextPath)
		if err != nil {
			return RequestLine{}, err
		}
		textContent = text
	}

	userPrompt, err := lang.Render(task, textContent)
	if err != nil {
		return RequestLine{}, err
	}

	encoded, mime, err := dataset.EncodeImage(item.ImagePath)
	if err != nil {
		return RequestLine{}, err
	}

	return RequestLine{
		CustomID: newCustomID(item),
		Method:   "POST",
		URL:      chatCompletionsURL,
		Body: RequestBody{
			Model: model,
			Messages: []Message{
				{Role: "system", Content: lang.SystemPrompt},
				{Role: "user", Content: []ContentPart{
					{Type: "text", Text: userPrompt},
					{Type: "image_url", ImageURL: &ImageURL{
						URL: fmt.Sprintf("data:%s;base64,%s", mime, encoded),
					}},
				}},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
	}, nil
}

// parseResponseLine decodes one output line and extracts the result text.
// Failed requests yield an error string result so the item is recorded
// rather than retried indefinitely.
func parseResponseLine(raw string) (customID, result string, err error) {
	var line ResponseLine
	if err := json.Unmarshal([]byte(raw), &line); err != nil {
		return "", "", fmt.Errorf("failed to decode batch output line: %w", err)
	}
	if line.CustomID == "" {
		return "", "", fmt.Errorf("batch output line missing custom_id")
	}

	if line.Response != nil && line.Response.StatusCode == 200 {
		if len(line.Response.Body.Choices) == 0 {
			return line.CustomID, "Error: No choices in response.", nil
		}
		return line.CustomID, line.Response.Body.Choices[0].Message.Content, nil
	}

	statusCode := 0
	if line.Response != nil {
		statusCode = line.Response.StatusCode
	}
	message := "Unknown error"
	if line.Error != nil && line.Error.Message != "" {
		message = line.Error.Message
	} else if line.Response != nil && line.Response.Body.Error != nil {
		message = line.Response.Body.Error.Message
	}
	return line.CustomID, fmt.Sprintf("Error: Status %d, Message: %s", statusCode, message), nil
}
