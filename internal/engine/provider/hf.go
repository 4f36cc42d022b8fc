package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const maxRetries = 3

// HuggingFace calls a hosted text-classification endpoint that returns all
// label scores per input (the pipeline equivalent of top_k=None). Use it
// when the model should not be resident in this process.
type HuggingFace struct {
	endpoint string
	token    string
	client   *http.Client
}

// HFOption configures the HuggingFace provider.
type HFOption func(*HuggingFace)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) HFOption {
	return func(h *HuggingFace) { h.client = c }
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) HFOption {
	return func(h *HuggingFace) { h.client.Timeout = d }
}

// NewHuggingFace creates a provider for the given inference endpoint with
// Bearer auth.
func NewHuggingFace(endpoint, token string, opts ...HFOption) *HuggingFace {
	h := &HuggingFace{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StatusError represents a non-2xx response from the inference endpoint.
type StatusError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string // Retry-After header value for 429s
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Classify scores a single text.
func (h *HuggingFace) Classify(ctx context.Context, text string) ([]RawScore, error) {
	batch, err := h.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return batch[0], nil
}

// ClassifyBatch posts the texts and decodes one score set per input.
// Retries on 429 (honoring Retry-After) and 5xx — Hugging Face answers 503
// while a cold model loads — with exponential backoff, max 3 retries.
func (h *HuggingFace) ClassifyBatch(ctx context.Context, texts []string) ([][]RawScore, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(struct {
		Inputs []string `json:"inputs"`
	}{Inputs: texts})
	if err != nil {
		return nil, fmt.Errorf("hf: %w", err)
	}

	var lastErr *StatusError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(backoffDelay(attempt, lastErr))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("hf: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+h.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := h.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("hf: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("hf: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return decodeScores(body, len(texts))
		}

		bodyStr := string(body)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: bodyStr}

		if resp.StatusCode == http.StatusTooManyRequests {
			statusErr.retryAfter = resp.Header.Get("Retry-After")
			lastErr = statusErr
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = statusErr
			continue
		}
		return nil, fmt.Errorf("hf: %w", statusErr)
	}
	return nil, fmt.Errorf("hf: %w", lastErr)
}

// Close implements Provider; the remote backend holds no local resources.
func (h *HuggingFace) Close() error {
	return nil
}

// decodeScores parses the endpoint's [[{label, score}, ...], ...] response.
func decodeScores(body []byte, want int) ([][]RawScore, error) {
	var out [][]RawScore
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("hf: failed to decode response: %w", err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("hf: got %d result sets for %d inputs", len(out), want)
	}
	return out, nil
}

// backoffDelay returns the wait duration before a retry attempt:
// Retry-After when a 429 supplied one, otherwise 1s, 2s, 4s.
func backoffDelay(attempt int, lastErr *StatusError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == http.StatusTooManyRequests && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}
