package compose

import (
	"github.com/techimg/hippo-tracker/internal/event"
	"github.com/techimg/hippo-tracker/internal/model"
	"github.com/techimg/hippo-tracker/internal/redact"
)

// addCategoryFields extracts the fields the category calls for.
// Free text always passes through the redactor; payment audit fields
// are forwarded verbatim and never truncated. The payment schema is
// fixed: nothing beyond the five audit fields is ever extracted, even
// if the raw event carries more.
func addCategoryFields(rec map[string]any, u *event.Update, cat model.Category, maxLen int) {
	if u == nil {
		return
	}

	switch cat {
	case model.CategorySuccessfulPayment:
		rec["payment"] = u.Message.SuccessfulPayment.ToMap()
	case model.CategoryInvoice:
		inv := u.Message.Invoice
		rec["payment"] = map[string]any{
			"currency":     inv.Currency,
			"total_amount": inv.TotalAmount,
		}
		if inv.Title != "" {
			rec["message"] = redact.Truncate(inv.Title, maxLen)
		}
	case model.CategoryShippingQuery:
		rec["payment"] = map[string]any{
			"invoice_payload": u.ShippingQuery.InvoicePayload,
		}
	case model.CategoryPreCheckoutQuery:
		pcq := u.PreCheckoutQuery
		rec["payment"] = map[string]any{
			"currency":        pcq.Currency,
			"total_amount":    pcq.TotalAmount,
			"invoice_payload": pcq.InvoicePayload,
		}

	case model.CategoryCallbackQuery:
		rec["callback_data"] = redact.Truncate(u.CallbackQuery.Data, maxLen)
	case model.CategoryInlineQuery:
		rec["query"] = redact.Truncate(u.InlineQuery.Query, maxLen)
	case model.CategoryChosenInlineResult:
		rec["query"] = redact.Truncate(u.ChosenInlineResult.Query, maxLen)
	case model.CategoryPollAnswer:
		rec["poll_id"] = u.PollAnswer.PollID

	case model.CategoryPhoto, model.CategoryVideo, model.CategoryDocument,
		model.CategoryAudio, model.CategoryVoice, model.CategoryVideoNote,
		model.CategorySticker, model.CategoryAnimation:
		rec["media"] = mediaRecord(u.Message, cat)
		if u.Message.Caption != "" {
			rec["message"] = redact.Truncate(u.Message.Caption, maxLen)
		}

	default:
		if text := textOf(u); text != "" {
			rec["message"] = redact.Truncate(text, maxLen)
		}
	}
}

// mediaRecord builds the media sub-record: the category name plus the
// identifier pairs, order preserved for sequences.
func mediaRecord(m *event.Message, cat model.Category) map[string]any {
	var refs []model.FileRef
	switch cat {
	case model.CategoryPhoto:
		refs = m.Photo
	case model.CategoryVideo:
		refs = single(m.Video)
	case model.CategoryDocument:
		refs = single(m.Document)
	case model.CategoryAudio:
		refs = single(m.Audio)
	case model.CategoryVoice:
		refs = single(m.Voice)
	case model.CategoryVideoNote:
		refs = single(m.VideoNote)
	case model.CategorySticker:
		refs = single(m.Sticker)
	case model.CategoryAnimation:
		refs = single(m.Animation)
	}

	files := make([]any, 0, len(refs))
	for _, r := range refs {
		files = append(files, r.ToMap())
	}
	return map[string]any{
		"type":  string(cat),
		"files": files,
	}
}

func single(r *model.FileRef) []model.FileRef {
	if r == nil {
		return nil
	}
	return []model.FileRef{*r}
}

// textOf returns the free-text content of whichever message variant is
// present, caption included.
func textOf(u *event.Update) string {
	for _, m := range []*event.Message{
		u.Message, u.EditedMessage, u.ChannelPost, u.EditedChannelPost,
		u.BusinessMessage, u.EditedBusinessMessage,
	} {
		if m == nil {
			continue
		}
		if m.Text != "" {
			return m.Text
		}
		if m.Caption != "" {
			return m.Caption
		}
	}
	return ""
}
