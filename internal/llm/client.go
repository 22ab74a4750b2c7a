package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Config for the chat-completions client.
type Config struct {
	APIKey      string        // if empty, falls back to env LLM_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g. "gpt-4o-mini"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

// Client implements FieldExtractor over a chat/completions style endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
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
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// ExtractFields sends one chunk to the model and returns the parsed fields.
// A reject sentinel answer maps to ErrRejected.
func (c *Client) ExtractFields(ctx context.Context, req ExtractRequest) (ItemFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"chunk_ordinal", req.ChunkOrdinal,
		"strategy", req.Strategy,
		"text_len", len(req.ChunkText),
	)

	schema := BuildWorkItemJSONSchema()
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return ItemFields{}, nil, errors.Wrap(err, "marshal schema")
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": BuildSystemPrompt()},
			{"role": "system", "content": "JSON Schema:\n" + string(schemaJSON)},
			{"role": "user", "content": BuildUserPrompt(req)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ItemFields{}, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ItemFields{}, raw, errors.Wrap(err, "decode completion response")
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return ItemFields{}, raw, errors.New("no choices in completion response")
	}

	content := cc.Choices[0].Message.Content
	if IsReject(content) {
		c.log.Info("llm.extract.rejected",
			"req_id", rid, "chunk_ordinal", req.ChunkOrdinal,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ItemFields{}, []byte(content), ErrRejected
	}

	payload := []byte(ExtractJSONPayload(content))
	if err := ValidateJSONAgainstSchema(schema, payload); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ItemFields{}, payload, errors.Wrap(err, "schema validation failed")
	}

	var out ItemFields
	if err := json.Unmarshal(payload, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ItemFields{}, payload, errors.Wrap(err, "unmarshal fields")
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"progressive_number", out.ProgressiveNumber,
		"has_reference_code", out.ReferenceCode != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, payload, nil
}
