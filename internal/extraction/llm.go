package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuanphm/compliance-be/internal/api/domain"
)

// maxDocumentChars caps how much document text is sent to the model.
const maxDocumentChars = 12000

// LLMConfig configures the hosted model client.
type LLMConfig struct {
	BaseURL     string        // default https://api.openai.com/v1
	APIKey      string        // falls back to env LLM_API_KEY
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// LLMClient calls a hosted chat-completion model to extract tabular
// structure from free-form documents and to rewrite text. Responses are
// validated against a JSON schema before they reach the pipeline; the
// original provider error is logged, never surfaced to callers.
type LLMClient struct {
	cfg    LLMConfig
	http   *http.Client
	logger *slog.Logger
}

// NewLLMClient creates a client with config defaults applied.
func NewLLMClient(cfg LLMConfig, logger *slog.Logger) *LLMClient {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Extract asks the model to turn document text into columns and rows. The
// reply must be JSON matching the extraction schema; anything else counts as
// no usable structure.
func (c *LLMClient) Extract(ctx context.Context, upload Upload) (Result, error) {
	reqID := uuid.New().String()
	start := time.Now()

	text := string(upload.Data)
	if len(text) > maxDocumentChars {
		text = text[:maxDocumentChars]
	}

	system := strings.Join([]string{
		"You extract tabular data from compliance documents.",
		"Return ONLY JSON that matches the provided JSON Schema.",
		"Column names come from the document; every row maps each column name to a string value.",
		"Use ISO-8601 dates (YYYY-MM-DD) for date-like values.",
		"If the document contains no table-like data, return an empty rows array.",
	}, " ")
	user := fmt.Sprintf("Filename: %s\n\nDocument text:\n%s", upload.Filename, text)

	schema := extractionSchema()
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	content, err := c.complete(ctx, body)
	if err != nil {
		c.logger.Error("Extraction model call failed",
			slog.String("req_id", reqID),
			slog.Any("error", err),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return Result{}, fmt.Errorf("%w: extraction call failed", domain.ErrExternalService)
	}

	if err := validateAgainstSchema(schema, []byte(content)); err != nil {
		c.logger.Error("Extraction output failed schema validation",
			slog.String("req_id", reqID),
			slog.Any("error", err),
		)
		return Result{}, fmt.Errorf("%w: malformed extraction output", domain.ErrExternalService)
	}

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return Result{}, fmt.Errorf("%w: malformed extraction output", domain.ErrExternalService)
	}
	if len(result.Columns) == 0 || len(result.Rows) == 0 {
		return Result{}, ErrNoTabularData
	}

	c.logger.Info("Extraction model call succeeded",
		slog.String("req_id", reqID),
		slog.Int("columns", len(result.Columns)),
		slog.Int("rows", len(result.Rows)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return result, nil
}

// ImproveText rewrites user-authored text following an optional instruction.
func (c *LLMClient) ImproveText(ctx context.Context, text, instruction string) (string, error) {
	if instruction == "" {
		instruction = "Improve clarity, grammar, and tone. Keep the meaning and keep it concise."
	}

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": "You rewrite workplace compliance notes. " + instruction + " Return only the rewritten text."},
			{"role": "user", "content": text},
		},
	}

	content, err := c.complete(ctx, body)
	if err != nil {
		c.logger.Error("Text improvement call failed", slog.Any("error", err))
		return "", fmt.Errorf("%w: text improvement call failed", domain.ErrExternalService)
	}
	return strings.TrimSpace(content), nil
}

// complete posts a chat-completion request and returns the first choice's
// message content.
func (c *LLMClient) complete(ctx context.Context, body map[string]any) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("model http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("Failed to close model response body", slog.Any("error", cerr))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("model status %d: %s", resp.StatusCode, string(raw))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in model response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
