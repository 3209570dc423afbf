// Package event parses a raw runtime update into a tagged variant union
// and classifies it. Classification is a pure function of which fields
// are present; extraction downstream dispatches on the resulting tag
// instead of re-inspecting the raw structure.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/techimg/hippo-tracker/internal/model"
)

// User is a runtime user or bot account.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	LanguageCode string `json:"language_code"`
}

// Chat is the conversation an update belongs to.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username"`
}

// Message is the message-shaped variant shared by several update kinds.
// Only fields the engine extracts or classifies on are decoded; the
// sanitized snapshot works from the raw tree, not from this struct.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      *Chat  `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
	Caption   string `json:"caption"`

	Photo     []model.FileRef `json:"photo"`
	Video     *model.FileRef  `json:"video"`
	Document  *model.FileRef  `json:"document"`
	Audio     *model.FileRef  `json:"audio"`
	Voice     *model.FileRef  `json:"voice"`
	VideoNote *model.FileRef  `json:"video_note"`
	Sticker   *model.FileRef  `json:"sticker"`
	Animation *model.FileRef  `json:"animation"`

	Contact  json.RawMessage `json:"contact"`
	Location json.RawMessage `json:"location"`
	Venue    json.RawMessage `json:"venue"`
	Dice     json.RawMessage `json:"dice"`
	Poll     json.RawMessage `json:"poll"`

	Invoice           *Invoice       `json:"invoice"`
	SuccessfulPayment *model.Payment `json:"successful_payment"`
}

// Invoice carries the pre-payment amount fields.
type Invoice struct {
	Title       string `json:"title"`
	Currency    string `json:"currency"`
	TotalAmount int64  `json:"total_amount"`
}

// CallbackQuery is an inline-keyboard button press.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// InlineQuery is an incoming inline search query.
type InlineQuery struct {
	ID    string `json:"id"`
	From  *User  `json:"from"`
	Query string `json:"query"`
}

// ChosenInlineResult reports which inline result the user picked.
type ChosenInlineResult struct {
	ResultID string `json:"result_id"`
	From     *User  `json:"from"`
	Query    string `json:"query"`
}

// ShippingQuery is a shipping-address confirmation request.
type ShippingQuery struct {
	ID             string `json:"id"`
	From           *User  `json:"from"`
	InvoicePayload string `json:"invoice_payload"`
}

// PreCheckoutQuery is the final pre-payment confirmation.
type PreCheckoutQuery struct {
	ID             string `json:"id"`
	From           *User  `json:"from"`
	Currency       string `json:"currency"`
	TotalAmount    int64  `json:"total_amount"`
	InvoicePayload string `json:"invoice_payload"`
}

// PollAnswer is a user's vote in a non-anonymous poll.
type PollAnswer struct {
	PollID    string `json:"poll_id"`
	User      *User  `json:"user"`
	OptionIDs []int  `json:"option_ids"`
}

// ChatMemberUpdated reports a membership change.
type ChatMemberUpdated struct {
	Chat *Chat `json:"chat"`
	From *User `json:"from"`
	Date int64 `json:"date"`
}

// ChatJoinRequest is a pending request to join a chat.
type ChatJoinRequest struct {
	Chat *Chat `json:"chat"`
	From *User `json:"from"`
	Date int64 `json:"date"`
}

// Update is the tagged variant union of all recognized update kinds.
// Exactly one variant field is set per update from a well-behaved
// runtime; classification order decides ties for malformed inputs.
type Update struct {
	UpdateID int64 `json:"update_id"`

	Message               *Message `json:"message"`
	EditedMessage         *Message `json:"edited_message"`
	ChannelPost           *Message `json:"channel_post"`
	EditedChannelPost     *Message `json:"edited_channel_post"`
	BusinessMessage       *Message `json:"business_message"`
	EditedBusinessMessage *Message `json:"edited_business_message"`

	DeletedBusinessMessages json.RawMessage `json:"deleted_business_messages"`
	MessageReaction         json.RawMessage `json:"message_reaction"`
	MessageReactionCount    json.RawMessage `json:"message_reaction_count"`

	InlineQuery        *InlineQuery        `json:"inline_query"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result"`
	CallbackQuery      *CallbackQuery      `json:"callback_query"`
	ShippingQuery      *ShippingQuery      `json:"shipping_query"`
	PreCheckoutQuery   *PreCheckoutQuery   `json:"pre_checkout_query"`

	Poll       json.RawMessage `json:"poll"`
	PollAnswer *PollAnswer     `json:"poll_answer"`

	MyChatMember    *ChatMemberUpdated `json:"my_chat_member"`
	ChatMember      *ChatMemberUpdated `json:"chat_member"`
	ChatJoinRequest *ChatJoinRequest   `json:"chat_join_request"`
}

// Parse decodes a raw update into the typed union and the generic tree
// used for the sanitized snapshot. The raw tree is read-only input; the
// engine never mutates it.
func Parse(raw []byte) (*Update, map[string]any, error) {
	var u Update
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil, fmt.Errorf("parse update: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, nil, fmt.Errorf("parse update tree: %w", err)
	}
	return &u, tree, nil
}
