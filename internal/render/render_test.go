package render

import (
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/sxport/internal/export"
)

func fixtureMeta(count int) export.ConversationMeta {
	return export.ConversationMeta{
		Name:       "Alice & Bob <chat>",
		EventCount: count,
		ExportedAt: time.Date(2026, 3, 1, 18, 30, 0, 0, time.Local),
	}
}

// fixtureDays is the one-day scenario: a text message, an image, a voice
// note, all on the same calendar date.
func fixtureDays() []export.DayGroup {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time {
		return time.Date(2026, 2, 10, h, m, 0, 0, time.Local)
	}
	return []export.DayGroup{{
		Date: day,
		Events: []export.ChatEvent{
			{RowID: 1, Kind: export.KindMessage, Sender: "alice", Timestamp: at(9, 0), Text: "hi"},
			{RowID: 2, Kind: export.KindMessage, Sender: "me", Timestamp: at(9, 5),
				Media: &export.MediaRef{Kind: export.MediaImage, Caption: ""}},
			{RowID: 3, Kind: export.KindMessage, Sender: "alice", Timestamp: at(9, 10),
				Media: &export.MediaRef{Kind: export.MediaVoice, Caption: ""}},
		},
	}}
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"txt", "json", "html"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", ok, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) expected error")
	}
}

func TestRenderersTotalOnEmptyInput(t *testing.T) {
	for _, r := range All() {
		t.Run(string(r.Format()), func(t *testing.T) {
			out, err := r.Render(fixtureMeta(0), nil)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(out) == 0 {
				t.Fatal("empty artifact")
			}
			if !strings.Contains(string(out), "0") {
				t.Error("artifact does not show zero count")
			}
		})
	}
}

func TestTXTScenario(t *testing.T) {
	out, err := (&TXTRenderer{}).Render(fixtureMeta(3), fixtureDays())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)

	if got := strings.Count(s, "2026-02-10"); got != 1 {
		t.Errorf("date divider count = %d, want 1", got)
	}
	if got := strings.Count(s, "┌─"); got != 3 {
		t.Errorf("message block count = %d, want 3", got)
	}
	if !strings.Contains(s, "[IMAGE]") || !strings.Contains(s, "[VOICE]") {
		t.Error("media tags missing")
	}
	if !strings.Contains(s, "Messages: 3") {
		t.Error("header count missing")
	}
}

func TestTXTQuoteEditedDeleted(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	days := []export.DayGroup{{
		Date: day,
		Events: []export.ChatEvent{
			{RowID: 1, Kind: export.KindMessage, Sender: "me", Edited: true,
				Timestamp: day.Add(10 * time.Hour), Text: "fixed typo",
				Quote: &export.QuoteRef{Sender: "alice", Snippet: "original"}},
			{RowID: 2, Kind: export.KindDeleted, Sender: "alice",
				Timestamp: day.Add(11 * time.Hour), Text: export.DeletedPlaceholder},
		},
	}}
	out, err := (&TXTRenderer{}).Render(fixtureMeta(2), days)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "me [edited]") {
		t.Error("edited suffix missing")
	}
	if !strings.Contains(s, `↳ Reply to alice: "original"`) {
		t.Error("quote line missing")
	}
	if !strings.Contains(s, export.DeletedPlaceholder) {
		t.Error("deletion placeholder missing")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	original := []export.ChatEvent{
		{Kind: export.KindMessage, Sender: "alice", Timestamp: day.Add(9 * time.Hour), Text: "hi"},
		{Kind: export.KindMessage, Sender: "me", Edited: true, Timestamp: day.Add(10 * time.Hour),
			Text: "hello", Quote: &export.QuoteRef{Sender: "alice", Snippet: "hi"}},
		{Kind: export.KindMessage, Sender: "alice", Timestamp: day.Add(26 * time.Hour),
			Media: &export.MediaRef{Kind: export.MediaVideo, Caption: "clip"}},
		{Kind: export.KindDeleted, Sender: "me", Timestamp: day.Add(27 * time.Hour),
			Text: export.DeletedPlaceholder},
	}
	days := export.GroupByDay(original)

	out, err := (&JSONRenderer{}).Render(fixtureMeta(len(original)), days)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseDocument(out)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Meta.Count != len(original) || doc.Meta.Name != fixtureMeta(0).Name {
		t.Errorf("meta = %+v", doc.Meta)
	}

	got, err := doc.Events()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(original) {
		t.Fatalf("got %d events, want %d", len(got), len(original))
	}
	for i := range original {
		want, have := original[i], got[i]
		if have.Kind != want.Kind || have.Sender != want.Sender ||
			have.Edited != want.Edited || have.Text != want.Text {
			t.Errorf("event %d = %+v, want %+v", i, have, want)
		}
		if !have.Timestamp.Equal(want.Timestamp) {
			t.Errorf("event %d time = %v, want %v", i, have.Timestamp, want.Timestamp)
		}
		if (have.Quote == nil) != (want.Quote == nil) {
			t.Errorf("event %d quote presence mismatch", i)
		} else if want.Quote != nil && *have.Quote != *want.Quote {
			t.Errorf("event %d quote = %+v, want %+v", i, have.Quote, want.Quote)
		}
		if (have.Media == nil) != (want.Media == nil) {
			t.Errorf("event %d media presence mismatch", i)
		} else if want.Media != nil && *have.Media != *want.Media {
			t.Errorf("event %d media = %+v, want %+v", i, have.Media, want.Media)
		}
	}
}

func TestJSONOptionalFieldsOmitted(t *testing.T) {
	out, err := (&JSONRenderer{}).Render(fixtureMeta(1), []export.DayGroup{{
		Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local),
		Events: []export.ChatEvent{
			{Kind: export.KindMessage, Sender: "alice", Timestamp: time.Now(), Text: "plain"},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if strings.Contains(s, `"quote"`) || strings.Contains(s, `"media"`) {
		t.Error("absent optional fields must be omitted, not null")
	}
	if !strings.Contains(s, `"kind": "message"`) {
		t.Error("kind tag must always be present")
	}
}

func TestHTMLScenario(t *testing.T) {
	out, err := (&HTMLRenderer{}).Render(fixtureMeta(3), fixtureDays())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)

	if got := strings.Count(s, `<div class="msg `); got != 3 {
		t.Errorf("bubble count = %d, want 3", got)
	}
	if got := strings.Count(s, `<div class="date-sep">`); got != 1 {
		t.Errorf("date separator count = %d, want 1", got)
	}
	if !strings.Contains(s, `class="msg sent"`) || !strings.Contains(s, `class="msg received"`) {
		t.Error("sender-based bubble classes missing")
	}
	if !strings.Contains(s, "[IMAGE]") || !strings.Contains(s, "[VOICE]") {
		t.Error("media tags missing or indistinguishable")
	}
	if !strings.HasPrefix(s, "<!DOCTYPE html>") || !strings.HasSuffix(strings.TrimSpace(s), "</html>") {
		t.Error("artifact is not a complete document")
	}
}

func TestHTMLEscaping(t *testing.T) {
	days := []export.DayGroup{{
		Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local),
		Events: []export.ChatEvent{
			{Kind: export.KindMessage, Sender: "<script>", Timestamp: time.Now(),
				Text:  "a < b & c\nnext",
				Quote: &export.QuoteRef{Sender: "alice", Snippet: "<img>"}},
		},
	}}
	out, err := (&HTMLRenderer{}).Render(fixtureMeta(1), days)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if strings.Contains(s, "<script>") || strings.Contains(s, "<img>") {
		t.Error("unescaped user content in artifact")
	}
	if !strings.Contains(s, "a &lt; b &amp; c<br>next") {
		t.Error("text not escaped with line breaks preserved")
	}
}

func TestMediaTag(t *testing.T) {
	tests := []struct {
		kind export.MediaKind
		want string
	}{
		{export.MediaImage, "[IMAGE]"},
		{export.MediaFile, "[FILE]"},
		{export.MediaVoice, "[VOICE]"},
		{export.MediaVideo, "[VIDEO]"},
		{export.MediaUnknown, "[MEDIA]"},
	}
	for _, tt := range tests {
		if got := MediaTag(tt.kind); got != tt.want {
			t.Errorf("MediaTag(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
