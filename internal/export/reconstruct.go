package export

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// DeletedPlaceholder replaces the text of deleted messages.
const DeletedPlaceholder = "[deleted message]"

// UnknownSender is used when a quote target cannot be resolved.
const UnknownSender = "unknown"

// snippetLen bounds the quoted-text preview, in runes.
const snippetLen = 50

// Reconstructor turns raw message rows into the canonical event sequence:
// edit chains collapsed to their latest version, deletions replaced by
// placeholders, quotes resolved to sender + snippet.
type Reconstructor struct {
	logger *zap.Logger
}

// NewReconstructor creates a reconstructor. A nil logger disables warnings.
func NewReconstructor(logger *zap.Logger) *Reconstructor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconstructor{logger: logger}
}

// Reconstruct builds the sorted ChatEvent sequence for one conversation.
// Dirty data (dangling or self-referencing quotes) never fails; it is
// resolved via fallbacks and logged.
func (r *Reconstructor) Reconstruct(rows []RawRow) []ChatEvent {
	if len(rows) == 0 {
		return []ChatEvent{}
	}

	groups := make(map[string][]RawRow)
	for _, row := range rows {
		groups[groupKey(row)] = append(groups[groupKey(row)], row)
	}

	// Representative per edit-group: latest timestamp, ties to highest id.
	reps := make(map[string]RawRow, len(groups))
	for key, members := range groups {
		rep := members[0]
		for _, row := range members[1:] {
			if row.Timestamp.After(rep.Timestamp) ||
				(row.Timestamp.Equal(rep.Timestamp) && row.ID > rep.ID) {
				rep = row
			}
		}
		reps[key] = rep
	}

	byID := make(map[int64]RawRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	events := make([]ChatEvent, 0, len(reps))
	for key, rep := range reps {
		ev := ChatEvent{
			RowID:     rep.ID,
			Kind:      KindMessage,
			Sender:    rep.Sender,
			Timestamp: rep.Timestamp,
			Text:      rep.Text,
			Edited:    len(groups[key]) > 1,
		}

		if rep.Deleted {
			// Deletion supersedes content: no quote, no media.
			ev.Kind = KindDeleted
			ev.Text = DeletedPlaceholder
			events = append(events, ev)
			continue
		}

		if rep.Media != nil {
			m := *rep.Media
			ev.Media = &m
		}
		if rep.QuotedID != 0 {
			ev.Quote = r.resolveQuote(rep, byID, reps)
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].RowID < events[j].RowID
	})
	return events
}

// resolveQuote is a single-hop lookup: the quoted row is found among all
// loaded rows (representatives or not), then mapped to its own edit-group
// representative. It never follows the target's quotes.
func (r *Reconstructor) resolveQuote(rep RawRow, byID map[int64]RawRow, reps map[string]RawRow) *QuoteRef {
	target, ok := byID[rep.QuotedID]
	if !ok {
		r.logger.Warn("quote target not in loaded rows",
			zap.Int64("row_id", rep.ID),
			zap.Int64("quoted_id", rep.QuotedID))
		return &QuoteRef{Sender: UnknownSender, Snippet: ""}
	}
	if rep.QuotedID == rep.ID {
		r.logger.Warn("message quotes itself", zap.Int64("row_id", rep.ID))
	}
	quoted := reps[groupKey(target)]
	return &QuoteRef{Sender: quoted.Sender, Snippet: Snippet(quoted.Text)}
}

// Snippet truncates text to the bounded quote preview length.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen]) + "..."
}

func groupKey(row RawRow) string {
	if row.EditGroup != "" {
		return row.EditGroup
	}
	return fmt.Sprintf("row:%d", row.ID)
}
