// Package hippotracker provides privacy-bounded telemetry for chat-bot
// runtimes. It observes each inbound update, classifies it into one of
// a closed set of categories, extracts only the fields relevant to that
// category, bounds every string, strips media payloads down to their
// file identifiers, and ships the pruned record to a collector over
// HTTP.
//
// Usage:
//
//	ht, err := hippotracker.New("https://collector.example/v1/events",
//	    hippotracker.WithToken("s3cret"),
//	    hippotracker.WithMaxTextLength(500))
//	ht.Track(ctx, rawUpdate, hippotracker.Bot{ID: 42, Username: "mybot"})
//
// Track is stateless per call and safe for concurrent use. Delivery is
// fire-and-forget: a failed or timed-out send is reported through the
// returned error and the optional logger, never retried, and must
// never be allowed to abort the host runtime's own handling — mount
// Middleware to get that behavior for free.
package hippotracker
