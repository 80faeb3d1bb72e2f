package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
)

// DefaultMaxLength caps generated tokens per translation.
const DefaultMaxLength = 128

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// IndicTrans calls a hosted IndicTrans2 English-to-Indic model.
//
// The request body is {"inputs": "<2xx> text", "parameters": {"max_length": n}}
// where xx is the target language code. The model answers with either a
// list of {"translation_text": ...} objects or a single such object.
type IndicTrans struct {
	url       string
	token     string
	maxLength int
	client    *http.Client
	log       *slog.Logger
}

// Option configures an IndicTrans client.
type Option func(*IndicTrans)

// WithToken sends token as a bearer credential.
func WithToken(token string) Option {
	return func(t *IndicTrans) { t.token = token }
}

// WithMaxLength overrides DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(t *IndicTrans) {
		if n > 0 {
			t.maxLength = n
		}
	}
}

// NewIndicTrans creates a client for the inference endpoint at url.
func NewIndicTrans(url string, timeout time.Duration, opts ...Option) *IndicTrans {
	t := &IndicTrans{
		url:       url,
		maxLength: DefaultMaxLength,
		client:    &http.Client{Timeout: timeout},
		log:       logging.For(logging.ComponentTranslator),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxLength int `json:"max_length"`
}

type result struct {
	TranslationText string `json:"translation_text"`
}

// Translate implements Translator.
func (t *IndicTrans) Translate(ctx context.Context, text, code string) (string, error) {
	body, err := json.Marshal(request{
		Inputs:     fmt.Sprintf("<2%s> %s", code, text),
		Parameters: parameters{MaxLength: t.maxLength},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrTranslation, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: endpoint returned %s", ErrTranslation, resp.Status)
	}

	out, err := decodeResult(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}

	t.log.Debug("translated",
		"code", code,
		"chars_in", len([]rune(text)),
		"chars_out", len([]rune(out)),
		"duration", time.Since(start))
	return out, nil
}

func decodeResult(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var text string
	if raw[0] == '[' {
		var list []result
		if err := json.Unmarshal(raw, &list); err != nil {
			return "", fmt.Errorf("decoding response: %w", err)
		}
		if len(list) == 0 {
			return "", fmt.Errorf("response contained no translations")
		}
		text = list[0].TranslationText
	} else {
		var single result
		if err := json.Unmarshal(raw, &single); err != nil {
			return "", fmt.Errorf("decoding response: %w", err)
		}
		text = single.TranslationText
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("translation was empty")
	}
	return text, nil
}
