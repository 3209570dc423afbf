package event

import (
	"testing"

	"github.com/techimg/hippo-tracker/internal/model"
)

func mustParse(t *testing.T, raw string) *Update {
	t.Helper()
	u, _, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return u
}

func TestClassifyVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want model.Category
	}{
		{"text", `{"update_id":1,"message":{"message_id":1,"text":"hi"}}`, model.CategoryTextMessage},
		{"photo", `{"message":{"photo":[{"file_id":"a","file_unique_id":"b"}]}}`, model.CategoryPhoto},
		{"video", `{"message":{"video":{"file_id":"a"}}}`, model.CategoryVideo},
		{"document", `{"message":{"document":{"file_id":"a"}}}`, model.CategoryDocument},
		{"audio", `{"message":{"audio":{"file_id":"a"}}}`, model.CategoryAudio},
		{"voice", `{"message":{"voice":{"file_id":"a"}}}`, model.CategoryVoice},
		{"video_note", `{"message":{"video_note":{"file_id":"a"}}}`, model.CategoryVideoNote},
		{"sticker", `{"message":{"sticker":{"file_id":"a"}}}`, model.CategorySticker},
		{"animation", `{"message":{"animation":{"file_id":"a"}}}`, model.CategoryAnimation},
		{"contact", `{"message":{"contact":{"phone_number":"1"}}}`, model.CategoryContact},
		{"location", `{"message":{"location":{"latitude":1.5}}}`, model.CategoryLocation},
		{"venue", `{"message":{"venue":{"title":"x"}}}`, model.CategoryVenue},
		{"dice", `{"message":{"dice":{"value":4}}}`, model.CategoryDice},
		{"message_poll", `{"message":{"poll":{"id":"p"}}}`, model.CategoryMessagePoll},
		{"invoice", `{"message":{"invoice":{"currency":"USD","total_amount":100}}}`, model.CategoryInvoice},
		{"successful_payment", `{"message":{"successful_payment":{"currency":"USD","total_amount":100}}}`, model.CategorySuccessfulPayment},
		{"bare_message", `{"message":{"message_id":9}}`, model.CategoryMessage},
		{"edited_message", `{"edited_message":{"text":"x"}}`, model.CategoryEditedMessage},
		{"channel_post", `{"channel_post":{"text":"x"}}`, model.CategoryChannelPost},
		{"edited_channel_post", `{"edited_channel_post":{"text":"x"}}`, model.CategoryEditedChannelPost},
		{"business_message", `{"business_message":{"text":"x"}}`, model.CategoryBusinessMessage},
		{"edited_business_message", `{"edited_business_message":{"text":"x"}}`, model.CategoryEditedBusinessMessage},
		{"deleted_business_messages", `{"deleted_business_messages":{"message_ids":[1]}}`, model.CategoryDeletedBusinessMessages},
		{"message_reaction", `{"message_reaction":{"chat":{"id":1}}}`, model.CategoryMessageReaction},
		{"message_reaction_count", `{"message_reaction_count":{"chat":{"id":1}}}`, model.CategoryMessageReactionCount},
		{"inline_query", `{"inline_query":{"id":"1","query":"q"}}`, model.CategoryInlineQuery},
		{"chosen_inline_result", `{"chosen_inline_result":{"result_id":"1"}}`, model.CategoryChosenInlineResult},
		{"callback_query", `{"callback_query":{"id":"1","data":"d"}}`, model.CategoryCallbackQuery},
		{"shipping_query", `{"shipping_query":{"id":"1"}}`, model.CategoryShippingQuery},
		{"pre_checkout_query", `{"pre_checkout_query":{"id":"1"}}`, model.CategoryPreCheckoutQuery},
		{"poll", `{"poll":{"id":"p"}}`, model.CategoryPoll},
		{"poll_answer", `{"poll_answer":{"poll_id":"p"}}`, model.CategoryPollAnswer},
		{"my_chat_member", `{"my_chat_member":{"date":1}}`, model.CategoryMyChatMember},
		{"chat_member", `{"chat_member":{"date":1}}`, model.CategoryChatMember},
		{"chat_join_request", `{"chat_join_request":{"date":1}}`, model.CategoryChatJoinRequest},
		{"unknown", `{"update_id":7}`, model.CategoryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(mustParse(t, tc.raw))
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

// A message satisfying two predicates must classify by priority:
// the payment marker outranks text.
func TestClassifyPriorityPaymentOverText(t *testing.T) {
	u := mustParse(t, `{"message":{"text":"thanks!","successful_payment":{"currency":"USD","total_amount":500}}}`)
	if got := Classify(u); got != model.CategorySuccessfulPayment {
		t.Errorf("got %q, want successful_payment", got)
	}
}

// Photo with a caption is a photo, not a text message.
func TestClassifyPriorityPhotoOverCaption(t *testing.T) {
	u := mustParse(t, `{"message":{"caption":"look","photo":[{"file_id":"a"}]}}`)
	if got := Classify(u); got != model.CategoryPhoto {
		t.Errorf("got %q, want photo", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	u := mustParse(t, `{"message":{"text":"hi","photo":[{"file_id":"a"}],"invoice":{"currency":"USD"}}}`)
	first := Classify(u)
	for i := 0; i < 50; i++ {
		if got := Classify(u); got != first {
			t.Fatalf("classification changed between calls: %q then %q", first, got)
		}
	}
	if first != model.CategoryInvoice {
		t.Errorf("got %q, want invoice", first)
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != model.CategoryUnknown {
		t.Errorf("got %q, want unknown", got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, _, err := Parse([]byte(`{"update_id":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if _, _, err := Parse([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object update")
	}
}
