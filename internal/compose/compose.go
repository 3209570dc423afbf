// Package compose builds the outgoing telemetry record from a parsed
// update: identity, category-specific fields, timestamps, and an
// optional sanitized snapshot, pruned to the minimal canonical form.
package compose

import (
	"time"

	"github.com/techimg/hippo-tracker/internal/event"
	"github.com/techimg/hippo-tracker/internal/model"
	"github.com/techimg/hippo-tracker/internal/policy"
	"github.com/techimg/hippo-tracker/internal/prune"
	"github.com/techimg/hippo-tracker/internal/redact"
)

// Compose produces the telemetry record for one update. The raw tree is
// read-only; the returned record is owned by the caller. Compose never
// fails: a sanitization panic degrades to a record without the raw
// snapshot.
func Compose(u *event.Update, raw map[string]any, bot model.Bot, pol *policy.Policy, now time.Time) map[string]any {
	cat := event.Classify(u)

	rec := map[string]any{
		"event_type":  string(cat),
		"bot":         botIdentity(u, bot),
		"user":        userFields(actor(u)),
		"chat":        chatFields(chatOf(u)),
		"observed_at": now.UTC().Format(time.RFC3339),
	}
	if u != nil && u.UpdateID != 0 {
		rec["update_id"] = u.UpdateID
	}
	if ts := eventTime(u); ts != 0 {
		rec["event_time"] = ts
	}

	addCategoryFields(rec, u, cat, pol.MaxTextLength)

	if pol.IncludeRawUpdate && raw != nil {
		if snap := snapshot(raw, cat, pol); snap != nil {
			rec["raw_update"] = snap
		}
	}

	return prune.Record(rec)
}

// snapshot sanitizes the full raw tree. Financial categories are exempt
// from length truncation: their audit fields are small and must stay
// complete. A panic during traversal drops only the snapshot.
func snapshot(raw map[string]any, cat model.Category, pol *policy.Policy) (out any) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	maxLen := pol.MaxTextLength
	if cat.IsFinancial() {
		maxLen = 0
	}
	return redact.Sanitize(raw, redact.Options{
		MaxLen:         maxLen,
		ExtraMediaKeys: pol.ExtraMediaKeys,
	})
}

// botIdentity prefers the pre-known bot handle. Before the runtime has
// learned its own identity it may hand over a zero Bot; fall back to
// the first is_bot actor among the variant senders.
func botIdentity(u *event.Update, bot model.Bot) map[string]any {
	if bot.ID == 0 && bot.Username == "" && u != nil {
		for _, from := range []*event.User{
			senderOf(u.Message),
			senderOf(messageOf(u.CallbackQuery)),
			senderOf(u.BusinessMessage),
		} {
			if from != nil && from.IsBot {
				bot = model.Bot{ID: from.ID, Username: from.Username}
				break
			}
		}
	}
	m := map[string]any{}
	if bot.ID != 0 {
		m["id"] = bot.ID
	}
	if bot.Username != "" {
		m["username"] = bot.Username
	}
	return m
}

func senderOf(m *event.Message) *event.User {
	if m == nil {
		return nil
	}
	return m.From
}

func messageOf(cq *event.CallbackQuery) *event.Message {
	if cq == nil {
		return nil
	}
	return cq.Message
}

// actor resolves the acting user across variants, first match wins.
func actor(u *event.Update) *event.User {
	if u == nil {
		return nil
	}
	for _, m := range []*event.Message{
		u.Message, u.EditedMessage, u.ChannelPost, u.EditedChannelPost,
		u.BusinessMessage, u.EditedBusinessMessage,
	} {
		if m != nil {
			return m.From
		}
	}
	switch {
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.InlineQuery != nil:
		return u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return u.ChosenInlineResult.From
	case u.ShippingQuery != nil:
		return u.ShippingQuery.From
	case u.PreCheckoutQuery != nil:
		return u.PreCheckoutQuery.From
	case u.PollAnswer != nil:
		return u.PollAnswer.User
	case u.MyChatMember != nil:
		return u.MyChatMember.From
	case u.ChatMember != nil:
		return u.ChatMember.From
	case u.ChatJoinRequest != nil:
		return u.ChatJoinRequest.From
	}
	return nil
}

// chatOf resolves the chat across variants, first match wins.
func chatOf(u *event.Update) *event.Chat {
	if u == nil {
		return nil
	}
	for _, m := range []*event.Message{
		u.Message, u.EditedMessage, u.ChannelPost, u.EditedChannelPost,
		u.BusinessMessage, u.EditedBusinessMessage,
		messageOf(u.CallbackQuery),
	} {
		if m != nil && m.Chat != nil {
			return m.Chat
		}
	}
	switch {
	case u.MyChatMember != nil:
		return u.MyChatMember.Chat
	case u.ChatMember != nil:
		return u.ChatMember.Chat
	case u.ChatJoinRequest != nil:
		return u.ChatJoinRequest.Chat
	}
	return nil
}

func userFields(from *event.User) map[string]any {
	if from == nil {
		return nil
	}
	m := map[string]any{}
	if from.ID != 0 {
		m["id"] = from.ID
	}
	if from.IsBot {
		m["is_bot"] = true
	}
	if from.Username != "" {
		m["username"] = from.Username
	}
	if from.FirstName != "" {
		m["first_name"] = from.FirstName
	}
	if from.LastName != "" {
		m["last_name"] = from.LastName
	}
	if from.LanguageCode != "" {
		m["language_code"] = from.LanguageCode
	}
	return m
}

func chatFields(c *event.Chat) map[string]any {
	if c == nil {
		return nil
	}
	m := map[string]any{}
	if c.ID != 0 {
		m["id"] = c.ID
	}
	if c.Type != "" {
		m["type"] = c.Type
	}
	if c.Title != "" {
		m["title"] = c.Title
	}
	if c.Username != "" {
		m["username"] = c.Username
	}
	return m
}

// timestampCandidates is the ordered list of locations the original
// event time may live at, depending on the variant. First present wins.
var timestampCandidates = []func(*event.Update) int64{
	func(u *event.Update) int64 { return dateOf(u.Message) },
	func(u *event.Update) int64 { return dateOf(u.EditedMessage) },
	func(u *event.Update) int64 { return dateOf(u.ChannelPost) },
	func(u *event.Update) int64 { return dateOf(u.EditedChannelPost) },
	func(u *event.Update) int64 { return dateOf(messageOf(u.CallbackQuery)) },
	func(u *event.Update) int64 { return dateOf(u.BusinessMessage) },
	func(u *event.Update) int64 { return dateOf(u.EditedBusinessMessage) },
	func(u *event.Update) int64 {
		if u.MyChatMember != nil {
			return u.MyChatMember.Date
		}
		return 0
	},
	func(u *event.Update) int64 {
		if u.ChatMember != nil {
			return u.ChatMember.Date
		}
		return 0
	},
	func(u *event.Update) int64 {
		if u.ChatJoinRequest != nil {
			return u.ChatJoinRequest.Date
		}
		return 0
	},
}

func dateOf(m *event.Message) int64 {
	if m == nil {
		return 0
	}
	return m.Date
}

// eventTime returns the best-effort original timestamp, 0 when absent.
func eventTime(u *event.Update) int64 {
	if u == nil {
		return 0
	}
	for _, candidate := range timestampCandidates {
		if ts := candidate(u); ts != 0 {
			return ts
		}
	}
	return 0
}
