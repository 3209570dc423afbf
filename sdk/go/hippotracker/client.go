package hippotracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/techimg/hippo-tracker/internal/client"
	"github.com/techimg/hippo-tracker/internal/compose"
	"github.com/techimg/hippo-tracker/internal/event"
	"github.com/techimg/hippo-tracker/internal/policy"
)

// Client normalizes updates and delivers telemetry records.
// Immutable after New; safe for concurrent Track calls.
type Client struct {
	pol      *policy.Policy
	delivery *client.Client
	logger   *log.Logger
	now      func() time.Time
}

// New creates a Client shipping to endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("hippotracker: endpoint is required")
	}

	cfg := clientConfig{pol: policy.Default()}
	for _, o := range opts {
		o(&cfg)
	}
	cfg.pol.Endpoint = endpoint
	cfg.pol.Normalize()

	logger := cfg.logger
	if cfg.pol.Log && logger == nil {
		logger = log.New(os.Stderr, "hippotracker: ", log.LstdFlags)
	}
	if !cfg.pol.Log {
		logger = nil
	}

	return &Client{
		pol:      cfg.pol,
		delivery: client.New(endpoint, cfg.pol.Token, cfg.pol.Timeout(), logger),
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Track normalizes one raw update and posts the resulting record.
// The returned error is observability only: the host runtime should
// log it at most, never let it interrupt event handling. Track never
// panics and never retries.
func (c *Client) Track(ctx context.Context, raw json.RawMessage, bot Bot) error {
	u, tree, err := event.Parse(raw)
	if err != nil {
		return fmt.Errorf("hippotracker: %w", err)
	}
	rec := compose.Compose(u, tree, bot.internal(), c.pol, c.now())
	if err := c.delivery.Send(ctx, rec); err != nil {
		return fmt.Errorf("hippotracker: %w", err)
	}
	return nil
}

// Record normalizes one raw update without delivering it. Useful for
// inspection and offline replay.
func (c *Client) Record(raw json.RawMessage, bot Bot) (map[string]any, error) {
	u, tree, err := event.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("hippotracker: %w", err)
	}
	return compose.Compose(u, tree, bot.internal(), c.pol, c.now()), nil
}
