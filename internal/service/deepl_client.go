package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"selstudy/internal/config"
)

// Translator is the external batch-translation dependency. DeepLClient
// implements it against the live API; tests inject fakes.
type Translator interface {
	Translate(ctx context.Context, sourceLang, targetLang string, texts []string) ([]string, error)
}

// DeepLClient calls the DeepL v2 translate endpoint. One batched call per
// miss set; retried once on transport or 5xx failure. DeepL reports quota
// exhaustion with status 456, surfaced as ErrTranslationQuota so callers can
// fall back to source text.
type DeepLClient struct {
	config *config.DeepLConfig
	client *http.Client
}

// NewDeepLClient creates a new DeepL API client
func NewDeepLClient() *DeepLClient {
	cfg := config.DefaultDeepLConfig()
	return &DeepLClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// NewDeepLClientWith creates a client with explicit config and transport,
// used by tests
func NewDeepLClientWith(cfg *config.DeepLConfig, client *http.Client) *DeepLClient {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond}
	}
	return &DeepLClient{config: cfg, client: client}
}

func (c *DeepLClient) Translate(ctx context.Context, sourceLang, targetLang string, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if !c.config.IsEnabled() {
		// No API key configured; echo the source text so local development
		// works without a DeepL account
		out := make([]string, len(texts))
		copy(out, texts)
		return out, nil
	}

	reqBody := map[string]interface{}{
		"text":        texts,
		"source_lang": strings.ToUpper(sourceLang),
		"target_lang": strings.ToUpper(targetLang),
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		translated, retryable, err := c.doRequest(ctx, jsonBody, len(texts))
		if err == nil {
			return translated, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *DeepLClient) doRequest(ctx context.Context, body []byte, want int) ([]string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, true, fmt.Errorf("%w: timeout", ErrTranslationFailed)
		}
		return nil, true, ErrTranslationFailed
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == 456 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, ErrTranslationQuota
	case resp.StatusCode >= 500:
		return nil, true, ErrTranslationFailed
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("%w: status %d", ErrTranslationFailed, resp.StatusCode)
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&deeplResp); err != nil {
		return nil, false, ErrTranslationFailed
	}
	if len(deeplResp.Translations) != want {
		return nil, false, fmt.Errorf("%w: expected %d translations, got %d", ErrTranslationFailed, want, len(deeplResp.Translations))
	}

	translated := make([]string, 0, want)
	for _, t := range deeplResp.Translations {
		translated = append(translated, t.Text)
	}
	return translated, false, nil
}
