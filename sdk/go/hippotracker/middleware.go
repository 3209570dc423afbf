package hippotracker

import (
	"context"
	"encoding/json"
)

// UpdateHandler is the host runtime's per-update callback shape.
type UpdateHandler func(ctx context.Context, raw json.RawMessage) error

// Middleware wraps an update handler so every update is tracked before
// the handler runs. Telemetry failures are swallowed (logged when
// logging is enabled): observing must never prevent or delay the
// runtime's own handling beyond the bounded delivery call.
func (c *Client) Middleware(bot Bot, next UpdateHandler) UpdateHandler {
	return func(ctx context.Context, raw json.RawMessage) error {
		if err := c.Track(ctx, raw, bot); err != nil && c.logger != nil {
			c.logger.Printf("track failed: %v", err)
		}
		return next(ctx, raw)
	}
}
