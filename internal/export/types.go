package export

import "time"

// EventKind distinguishes regular messages from deletion placeholders.
type EventKind string

const (
	KindMessage EventKind = "message"
	KindDeleted EventKind = "deleted"
)

// MediaKind is the small media taxonomy carried through exports.
type MediaKind string

const (
	MediaImage   MediaKind = "image"
	MediaFile    MediaKind = "file"
	MediaVoice   MediaKind = "voice"
	MediaVideo   MediaKind = "video"
	MediaUnknown MediaKind = "unknown"
)

// MediaKindFromTag maps a SimpleX msgContent type tag onto the taxonomy.
func MediaKindFromTag(tag string) MediaKind {
	switch tag {
	case "image":
		return MediaImage
	case "file":
		return MediaFile
	case "voice":
		return MediaVoice
	case "video":
		return MediaVideo
	default:
		return MediaUnknown
	}
}

// RawRow is one denormalized message row as loaded from the chat store.
// Rows sharing a non-empty EditGroup are versions of the same logical message.
type RawRow struct {
	ID        int64
	Sender    string // "me" for sent messages, participant name otherwise
	Text      string
	Timestamp time.Time
	QuotedID  int64  // 0 = no quote
	EditGroup string // "" = never edited (singleton group keyed by ID)
	Deleted   bool
	Media     *MediaRef
}

// QuoteRef points at the message an event replies to.
type QuoteRef struct {
	Sender  string
	Snippet string
}

// MediaRef describes an attached media item.
type MediaRef struct {
	Kind    MediaKind
	Caption string
}

// ChatEvent is one reconstructed logical message, built once per export.
type ChatEvent struct {
	RowID     int64
	Kind      EventKind
	Sender    string
	Timestamp time.Time
	Text      string
	Edited    bool
	Quote     *QuoteRef
	Media     *MediaRef
}

// DayGroup is a contiguous run of events sharing one local calendar date.
type DayGroup struct {
	Date   time.Time // midnight, local zone
	Events []ChatEvent
}

// ConversationMeta describes one export invocation.
type ConversationMeta struct {
	Name       string
	EventCount int
	ExportedAt time.Time
}
