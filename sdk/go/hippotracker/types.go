package hippotracker

import "github.com/techimg/hippo-tracker/internal/model"

// Bot identifies the observing bot. A zero Bot is allowed: identity is
// then recovered best-effort from the update's own sender fields.
type Bot struct {
	ID       int64
	Username string
}

func (b Bot) internal() model.Bot {
	return model.Bot{ID: b.ID, Username: b.Username}
}
