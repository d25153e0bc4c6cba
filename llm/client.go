package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// ErrUnavailable is returned when the text service cannot be reached or is
// not configured. Callers are expected to degrade to their deterministic
// fallback instead of surfacing this to users.
var ErrUnavailable = errors.New("llm: text service unavailable")

// Client generates text from a prompt. Implementations must honor the
// context deadline.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Enabled() bool
}

// HTTPClient talks to a hosted text-generation API.
type HTTPClient struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	http     *http.Client
}

// NewFromEnv builds a client from LLM_API_URL / LLM_API_KEY. Without a key
// the client reports disabled and every call returns ErrUnavailable.
func NewFromEnv() *HTTPClient {
	timeout := 30 * time.Second
	if raw := os.Getenv("LLM_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	return &HTTPClient{
		Endpoint: os.Getenv("LLM_API_URL"),
		APIKey:   os.Getenv("LLM_API_KEY"),
		Timeout:  timeout,
		http:     &http.Client{},
	}
}

func (c *HTTPClient) Enabled() bool {
	return c.APIKey != "" && c.Endpoint != ""
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// GenerateText posts the prompt and returns the generated text. The call is
// bounded by the configured timeout on top of any caller deadline.
func (c *HTTPClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, out.Error)
	}
	return out.Text, nil
}
