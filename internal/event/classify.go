package event

import "github.com/techimg/hippo-tracker/internal/model"

// rule pairs a category with its shape predicate.
type rule struct {
	cat   model.Category
	match func(*Update) bool
}

// rules is evaluated in order; the first match wins. The order is part
// of the classification contract: a message carrying both a payment
// marker and text must classify as the payment, so payment rules sit
// above content rules, and specific content rules sit above the bare
// message fallback. Do not reorder.
var rules = []rule{
	// Message sub-kinds. Payments outrank everything else a message
	// can carry.
	{model.CategorySuccessfulPayment, func(u *Update) bool { return u.Message != nil && u.Message.SuccessfulPayment != nil }},
	{model.CategoryInvoice, func(u *Update) bool { return u.Message != nil && u.Message.Invoice != nil }},
	{model.CategoryPhoto, func(u *Update) bool { return u.Message != nil && len(u.Message.Photo) > 0 }},
	{model.CategoryVideo, func(u *Update) bool { return u.Message != nil && u.Message.Video != nil }},
	{model.CategoryDocument, func(u *Update) bool { return u.Message != nil && u.Message.Document != nil }},
	{model.CategoryAudio, func(u *Update) bool { return u.Message != nil && u.Message.Audio != nil }},
	{model.CategoryVoice, func(u *Update) bool { return u.Message != nil && u.Message.Voice != nil }},
	{model.CategoryVideoNote, func(u *Update) bool { return u.Message != nil && u.Message.VideoNote != nil }},
	{model.CategorySticker, func(u *Update) bool { return u.Message != nil && u.Message.Sticker != nil }},
	{model.CategoryAnimation, func(u *Update) bool { return u.Message != nil && u.Message.Animation != nil }},
	{model.CategoryContact, func(u *Update) bool { return u.Message != nil && len(u.Message.Contact) > 0 }},
	{model.CategoryLocation, func(u *Update) bool { return u.Message != nil && len(u.Message.Location) > 0 }},
	{model.CategoryVenue, func(u *Update) bool { return u.Message != nil && len(u.Message.Venue) > 0 }},
	{model.CategoryDice, func(u *Update) bool { return u.Message != nil && len(u.Message.Dice) > 0 }},
	{model.CategoryMessagePoll, func(u *Update) bool { return u.Message != nil && len(u.Message.Poll) > 0 }},
	{model.CategoryTextMessage, func(u *Update) bool { return u.Message != nil && u.Message.Text != "" }},
	{model.CategoryMessage, func(u *Update) bool { return u.Message != nil }},

	// Update-level variants.
	{model.CategoryEditedMessage, func(u *Update) bool { return u.EditedMessage != nil }},
	{model.CategoryChannelPost, func(u *Update) bool { return u.ChannelPost != nil }},
	{model.CategoryEditedChannelPost, func(u *Update) bool { return u.EditedChannelPost != nil }},
	{model.CategoryBusinessMessage, func(u *Update) bool { return u.BusinessMessage != nil }},
	{model.CategoryEditedBusinessMessage, func(u *Update) bool { return u.EditedBusinessMessage != nil }},
	{model.CategoryDeletedBusinessMessages, func(u *Update) bool { return len(u.DeletedBusinessMessages) > 0 }},
	{model.CategoryMessageReaction, func(u *Update) bool { return len(u.MessageReaction) > 0 }},
	{model.CategoryMessageReactionCount, func(u *Update) bool { return len(u.MessageReactionCount) > 0 }},
	{model.CategoryInlineQuery, func(u *Update) bool { return u.InlineQuery != nil }},
	{model.CategoryChosenInlineResult, func(u *Update) bool { return u.ChosenInlineResult != nil }},
	{model.CategoryCallbackQuery, func(u *Update) bool { return u.CallbackQuery != nil }},
	{model.CategoryShippingQuery, func(u *Update) bool { return u.ShippingQuery != nil }},
	{model.CategoryPreCheckoutQuery, func(u *Update) bool { return u.PreCheckoutQuery != nil }},
	{model.CategoryPoll, func(u *Update) bool { return len(u.Poll) > 0 }},
	{model.CategoryPollAnswer, func(u *Update) bool { return u.PollAnswer != nil }},
	{model.CategoryMyChatMember, func(u *Update) bool { return u.MyChatMember != nil }},
	{model.CategoryChatMember, func(u *Update) bool { return u.ChatMember != nil }},
	{model.CategoryChatJoinRequest, func(u *Update) bool { return u.ChatJoinRequest != nil }},
}

// Classify returns exactly one category for any update. Deterministic
// and side-effect-free; unrecognized shapes fall through to unknown.
func Classify(u *Update) model.Category {
	if u == nil {
		return model.CategoryUnknown
	}
	for _, r := range rules {
		if r.match(u) {
			return r.cat
		}
	}
	return model.CategoryUnknown
}
