package redact

// DefaultMediaKeys are the field names that receive reference-only
// treatment: the value is replaced by its identifier pair and no deeper
// traversal happens. The set is configuration, not algorithm; extend it
// via Options.ExtraMediaKeys without touching the sanitizer.
var DefaultMediaKeys = []string{
	"photo", "video", "document", "audio", "voice", "video_note",
	"sticker", "animation", "thumbnail", "thumb", "new_chat_photo",
}

// Options parameterize a sanitizer pass.
type Options struct {
	// MaxLen bounds every string leaf. Non-positive disables bounding.
	MaxLen int
	// ExtraMediaKeys extends DefaultMediaKeys.
	ExtraMediaKeys []string

	mediaSet map[string]bool
}

// compile builds the media key lookup set once per pass.
func (o *Options) compile() {
	o.mediaSet = make(map[string]bool, len(DefaultMediaKeys)+len(o.ExtraMediaKeys))
	for _, k := range DefaultMediaKeys {
		o.mediaSet[k] = true
	}
	for _, k := range o.ExtraMediaKeys {
		o.mediaSet[k] = true
	}
}

// isMedia reports whether key names a media-like field.
func (o *Options) isMedia(key string) bool {
	return o.mediaSet[key]
}
