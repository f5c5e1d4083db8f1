package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/llm"
)

// Source identifies this strategy in preview provenance.
func (c *Client) Source() constants.ExtractionSource {
	return constants.ExtractionSourceLLM
}

// ExtractFields implements extract.FieldExtractor using text-only
// chat/completions. Any failure here (missing credential, network, bad
// JSON, schema violation) is recoverable: the caller falls back to the
// rules strategy, never retries this one.
func (c *Client) ExtractFields(ctx context.Context, text string, examples []extract.CorrectionExample) (constants.BiodataFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if c.cfg.APIKey == "" {
		return constants.BiodataFields{}, nil, fmt.Errorf("openai: no API key configured")
	}

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
		"few_shot", len(examples),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages":        llm.BuildMessages(text, examples),
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return constants.BiodataFields{}, nil, httpErr
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
		return constants.BiodataFields{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return constants.BiodataFields{}, raw, fmt.Errorf("no choices in openai response")
	}

	content := llm.StripCodeFences(cc.Choices[0].Message.Content)
	rawContent := []byte(content)

	normalized, _, err := llm.NormalizeModelJSON(rawContent, c.log)
	if err != nil {
		c.log.Error("llm.extract.invalid_json",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return constants.BiodataFields{}, rawContent, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	schema := llm.BuildBiodataJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, normalized); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(normalized),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return constants.BiodataFields{}, rawContent, fmt.Errorf("schema validation failed: %w", err)
	}

	var out constants.BiodataFields
	if err := json.Unmarshal(normalized, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return constants.BiodataFields{}, rawContent, fmt.Errorf("unmarshal fields: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"name", out.Name,
		"dob", out.DOB,
		"looking_for", out.LookingFor,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, normalized, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
