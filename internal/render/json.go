package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/matheus3301/sxport/internal/export"
)

// JSONRenderer emits the structured export. The document round-trips:
// ParseDocument plus Document.Events reconstructs the event sequence
// without loss (modulo row ids, which are not part of the artifact).
type JSONRenderer struct{}

func (r *JSONRenderer) Format() Format { return FormatJSON }

// Document is the top-level JSON artifact schema.
type Document struct {
	Meta Meta  `json:"meta"`
	Days []Day `json:"days"`
}

// Meta mirrors export.ConversationMeta.
type Meta struct {
	Name       string `json:"name"`
	ExportedAt string `json:"exported_at"` // RFC 3339
	Count      int    `json:"count"`
}

// Day is one calendar date with its events.
type Day struct {
	Date   string  `json:"date"` // 2006-01-02
	Events []Event `json:"events"`
}

// Event is one rendered chat event. Quote and Media are omitted when
// absent; Kind is always present.
type Event struct {
	Kind   string `json:"kind"` // message | deleted
	Time   string `json:"time"` // 15:04:05, local
	Sender string `json:"sender"`
	Edited bool   `json:"edited"`
	Text   string `json:"text"`
	Quote  *Quote `json:"quote,omitempty"`
	Media  *Media `json:"media,omitempty"`
}

type Quote struct {
	Sender  string `json:"sender"`
	Snippet string `json:"snippet"`
}

type Media struct {
	Kind    string `json:"kind"`
	Caption string `json:"caption,omitempty"`
}

func (r *JSONRenderer) Render(meta export.ConversationMeta, days []export.DayGroup) ([]byte, error) {
	doc := Document{
		Meta: Meta{
			Name:       meta.Name,
			ExportedAt: meta.ExportedAt.Format(time.RFC3339),
			Count:      meta.EventCount,
		},
		Days: make([]Day, 0, len(days)),
	}
	for _, day := range days {
		d := Day{
			Date:   day.Date.Format("2006-01-02"),
			Events: make([]Event, 0, len(day.Events)),
		}
		for _, ev := range day.Events {
			d.Events = append(d.Events, toJSONEvent(ev))
		}
		doc.Days = append(doc.Days, d)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &RenderError{Format: FormatJSON, Err: err}
	}
	return append(data, '\n'), nil
}

func toJSONEvent(ev export.ChatEvent) Event {
	out := Event{
		Kind:   string(ev.Kind),
		Time:   ev.Timestamp.Local().Format("15:04:05"),
		Sender: ev.Sender,
		Edited: ev.Edited,
		Text:   ev.Text,
	}
	if ev.Quote != nil {
		out.Quote = &Quote{Sender: ev.Quote.Sender, Snippet: ev.Quote.Snippet}
	}
	if ev.Media != nil {
		out.Media = &Media{Kind: string(ev.Media.Kind), Caption: ev.Media.Caption}
	}
	return out
}

// ParseDocument re-ingests a JSON artifact.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse export document: %w", err)
	}
	return &doc, nil
}

// Events rebuilds the ChatEvent sequence from a parsed document.
// Timestamps are reassembled from each day's date plus the event time,
// in the local zone.
func (d *Document) Events() ([]export.ChatEvent, error) {
	var events []export.ChatEvent
	for _, day := range d.Days {
		date, err := time.ParseInLocation("2006-01-02", day.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse day date %q: %w", day.Date, err)
		}
		for _, ev := range day.Events {
			clock, err := time.Parse("15:04:05", ev.Time)
			if err != nil {
				return nil, fmt.Errorf("parse event time %q: %w", ev.Time, err)
			}
			out := export.ChatEvent{
				Kind:   export.EventKind(ev.Kind),
				Sender: ev.Sender,
				Edited: ev.Edited,
				Text:   ev.Text,
				Timestamp: time.Date(date.Year(), date.Month(), date.Day(),
					clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local),
			}
			if ev.Quote != nil {
				out.Quote = &export.QuoteRef{Sender: ev.Quote.Sender, Snippet: ev.Quote.Snippet}
			}
			if ev.Media != nil {
				out.Media = &export.MediaRef{Kind: export.MediaKind(ev.Media.Kind), Caption: ev.Media.Caption}
			}
			events = append(events, out)
		}
	}
	return events, nil
}
