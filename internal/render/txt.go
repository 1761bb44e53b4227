package render

import (
	"fmt"
	"strings"

	"github.com/matheus3301/sxport/internal/export"
)

// TXTRenderer emits the plain-text export: a header block, a divider per
// day, and one bordered block per event.
type TXTRenderer struct{}

func (r *TXTRenderer) Format() Format { return FormatTXT }

const txtRule = "======================================================================"

func (r *TXTRenderer) Render(meta export.ConversationMeta, days []export.DayGroup) ([]byte, error) {
	var b strings.Builder

	b.WriteString(txtRule + "\n")
	fmt.Fprintf(&b, "  SIMPLEX CHAT EXPORT: %s\n", meta.Name)
	fmt.Fprintf(&b, "  Exported: %s\n", meta.ExportedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  Messages: %d\n", meta.EventCount)
	b.WriteString(txtRule + "\n\n")

	for _, day := range days {
		divider := strings.Repeat("─", 25)
		fmt.Fprintf(&b, "%s %s %s\n\n", divider, day.Date.Format("2006-01-02"), divider)
		for _, ev := range day.Events {
			writeTXTEvent(&b, ev)
		}
	}

	b.WriteString(txtRule + "\n")
	b.WriteString("  END OF EXPORT\n")
	b.WriteString(txtRule + "\n")
	return []byte(b.String()), nil
}

func writeTXTEvent(b *strings.Builder, ev export.ChatEvent) {
	edited := ""
	if ev.Edited {
		edited = " [edited]"
	}
	fmt.Fprintf(b, "┌─ [%s] %s%s\n", ev.Timestamp.Local().Format("15:04:05"), ev.Sender, edited)

	if ev.Quote != nil {
		fmt.Fprintf(b, "│  ↳ Reply to %s: %q\n", ev.Quote.Sender, ev.Quote.Snippet)
	}

	switch {
	case ev.Kind == export.KindDeleted:
		fmt.Fprintf(b, "│  %s\n", ev.Text)
	case ev.Text != "":
		for _, line := range strings.Split(ev.Text, "\n") {
			fmt.Fprintf(b, "│  %s\n", line)
		}
	case ev.Media != nil:
		fmt.Fprintf(b, "│  %s\n", MediaTag(ev.Media.Kind))
	default:
		b.WriteString("│\n")
	}

	b.WriteString("└─\n\n")
}
