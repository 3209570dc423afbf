package hippotracker

import (
	"log"
	"time"

	"github.com/techimg/hippo-tracker/internal/policy"
)

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	pol    *policy.Policy
	logger *log.Logger
}

// WithToken sets the bearer token sent with every delivery.
func WithToken(token string) Option {
	return func(c *clientConfig) { c.pol.Token = token }
}

// WithMaxTextLength bounds every extracted string (default 500).
func WithMaxTextLength(n int) Option {
	return func(c *clientConfig) { c.pol.MaxTextLength = n }
}

// WithTimeout bounds the delivery call (default 3s).
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.pol.TimeoutMs = int(d / time.Millisecond) }
}

// WithRawUpdate attaches a sanitized snapshot of the full raw update to
// every record (default off).
func WithRawUpdate() Option {
	return func(c *clientConfig) { c.pol.IncludeRawUpdate = true }
}

// WithExtraMediaKeys extends the set of field names that receive
// reference-only treatment.
func WithExtraMediaKeys(keys ...string) Option {
	return func(c *clientConfig) { c.pol.ExtraMediaKeys = append(c.pol.ExtraMediaKeys, keys...) }
}

// WithLogging prints each outgoing record and its serialized byte size
// to logger. A nil logger logs to stderr.
func WithLogging(logger *log.Logger) Option {
	return func(c *clientConfig) {
		c.pol.Log = true
		c.logger = logger
	}
}
