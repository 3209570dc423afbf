// Package client delivers composed telemetry records to the collector.
// One bounded POST per record; failed or timed-out deliveries are
// reported to the caller and discarded, never retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client posts JSON records to a single collector endpoint.
// Safe for concurrent use.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *log.Logger
}

// New creates a delivery client. A nil logger disables diagnostics.
func New(endpoint, token string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Send serializes record and posts it. The call is bounded by both the
// client timeout and ctx. Serialization failure abandons the send.
func (c *Client) Send(ctx context.Context, record map[string]any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	if c.logger != nil {
		c.logger.Printf("telemetry %d bytes: %s", len(body), body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("deliver record: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("collector HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
