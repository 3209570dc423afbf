package model

// Category tags an observed update with exactly one semantic kind.
type Category string

const (
	// Message sub-kinds, most specific first.
	CategorySuccessfulPayment Category = "successful_payment"
	CategoryInvoice           Category = "invoice"
	CategoryPhoto             Category = "photo"
	CategoryVideo             Category = "video"
	CategoryDocument          Category = "document"
	CategoryAudio             Category = "audio"
	CategoryVoice             Category = "voice"
	CategoryVideoNote         Category = "video_note"
	CategorySticker           Category = "sticker"
	CategoryAnimation         Category = "animation"
	CategoryContact           Category = "contact"
	CategoryLocation          Category = "location"
	CategoryVenue             Category = "venue"
	CategoryDice              Category = "dice"
	CategoryMessagePoll       Category = "message_poll"
	CategoryTextMessage       Category = "text_message"
	CategoryMessage           Category = "message"

	// Update-level variants.
	CategoryEditedMessage           Category = "edited_message"
	CategoryChannelPost             Category = "channel_post"
	CategoryEditedChannelPost       Category = "edited_channel_post"
	CategoryBusinessMessage         Category = "business_message"
	CategoryEditedBusinessMessage   Category = "edited_business_message"
	CategoryDeletedBusinessMessages Category = "deleted_business_messages"
	CategoryMessageReaction         Category = "message_reaction"
	CategoryMessageReactionCount    Category = "message_reaction_count"
	CategoryInlineQuery             Category = "inline_query"
	CategoryChosenInlineResult      Category = "chosen_inline_result"
	CategoryCallbackQuery           Category = "callback_query"
	CategoryShippingQuery           Category = "shipping_query"
	CategoryPreCheckoutQuery        Category = "pre_checkout_query"
	CategoryPoll                    Category = "poll"
	CategoryPollAnswer              Category = "poll_answer"
	CategoryMyChatMember            Category = "my_chat_member"
	CategoryChatMember              Category = "chat_member"
	CategoryChatJoinRequest         Category = "chat_join_request"

	CategoryUnknown Category = "unknown"
)

// financial marks categories whose payment fields are exempt from
// truncation: audit fields are small and must stay complete.
var financial = map[Category]bool{
	CategorySuccessfulPayment: true,
	CategoryInvoice:           true,
	CategoryShippingQuery:     true,
	CategoryPreCheckoutQuery:  true,
}

// IsFinancial reports whether c carries payment audit fields.
func (c Category) IsFinancial() bool { return financial[c] }

// FileRef is the identifier pair kept for any media value. Everything
// else about the file (dimensions, sizes, paths) is stripped.
type FileRef struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
}

// ToMap converts a FileRef to the generic record form.
func (f FileRef) ToMap() map[string]any {
	return map[string]any{
		"file_id":        f.FileID,
		"file_unique_id": f.FileUniqueID,
	}
}

// Payment holds the forwarded payment audit fields. Raw payment
// instrument data is never represented here; the schema must not widen.
type Payment struct {
	Currency                string `json:"currency"`
	TotalAmount             int64  `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string `json:"provider_payment_charge_id"`
}

// ToMap converts a Payment to the generic record form.
func (p Payment) ToMap() map[string]any {
	return map[string]any{
		"currency":                   p.Currency,
		"total_amount":               p.TotalAmount,
		"invoice_payload":            p.InvoicePayload,
		"telegram_payment_charge_id": p.TelegramPaymentChargeID,
		"provider_payment_charge_id": p.ProviderPaymentChargeID,
	}
}

// Bot identifies the observing bot. Username is stored without the
// leading @.
type Bot struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
