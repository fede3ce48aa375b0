// Package commentary fetches a short flavor-text line for a finished run
// from a remote text-generation endpoint. The client never surfaces
// errors: any failure degrades to a fixed fallback string so the caller
// can display the result unconditionally.
package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-tui/internal/config"
)

// DefaultFallback is used when the config does not provide one.
const DefaultFallback = "Gravity always wins."

// request is the payload posted to the endpoint.
type request struct {
	Score int `json:"score"`
}

// response is the expected payload shape.
type response struct {
	Comment string `json:"comment"`
}

// Client requests commentary for final scores.
type Client struct {
	endpoint string
	fallback string
	http     *http.Client
	logger   *log.Logger
}

// New creates a client from the commentary config. An empty endpoint
// disables the remote call entirely.
func New(cfg config.Commentary) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	fallback := cfg.Fallback
	if fallback == "" {
		fallback = DefaultFallback
	}

	return &Client{
		endpoint: cfg.Endpoint,
		fallback: fallback,
		http:     &http.Client{Timeout: timeout},
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "commentary",
		}),
	}
}

// Fallback returns the string displayed when no commentary is available.
func (c *Client) Fallback() string {
	return c.fallback
}

// Commentary posts the final score and returns a display string. It
// always returns something displayable; transport errors, bad statuses,
// and malformed payloads all degrade to the fallback. No retries.
func (c *Client) Commentary(ctx context.Context, score int) string {
	if c.endpoint == "" {
		return c.fallback
	}

	text, err := c.fetch(ctx, score)
	if err != nil {
		c.logger.Warn("falling back to default line", "score", score, "error", err)
		return c.fallback
	}
	return text
}

func (c *Client) fetch(ctx context.Context, score int) (string, error) {
	body, err := json.Marshal(request{Score: score})
	if err != nil {
		return "", fmt.Errorf("commentary: cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("commentary: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("commentary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("commentary: unexpected status %d", resp.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("commentary: cannot decode response: %w", err)
	}

	text := strings.TrimSpace(payload.Comment)
	if text == "" {
		return "", fmt.Errorf("commentary: empty comment in response")
	}
	return text, nil
}
