package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/matheus3301/sxport/internal/export"
)

// HTMLRenderer emits a single self-contained dark-theme document with one
// chat bubble per event. No external resources; all styling is inline.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Format() Format { return FormatHTML }

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Chat Export: %s</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  background: linear-gradient(135deg, #0a0a0f 0%%, #1a1a2e 100%%);
  color: #e0e0e0;
  min-height: 100vh;
  padding: 20px;
}
.container { max-width: 800px; margin: 0 auto; }
header {
  text-align: center;
  padding: 30px;
  background: rgba(0, 217, 255, 0.1);
  border: 1px solid rgba(0, 217, 255, 0.3);
  border-radius: 16px;
  margin-bottom: 30px;
}
h1 { color: #00d9ff; font-size: 1.8em; margin-bottom: 10px; }
.meta { color: #888; font-size: 0.9em; }
.date-sep { text-align: center; padding: 15px; color: #00d9ff; font-weight: 600; font-size: 0.9em; }
.msg { margin: 12px 0; padding: 14px 18px; border-radius: 16px; max-width: 75%%; }
.msg.sent {
  background: linear-gradient(135deg, #0066cc, #004499);
  margin-left: auto;
  border-bottom-right-radius: 4px;
}
.msg.received {
  background: rgba(255,255,255,0.05);
  border: 1px solid rgba(255,255,255,0.1);
  margin-right: auto;
  border-bottom-left-radius: 4px;
}
.msg-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 8px; font-size: 0.8em; }
.sender { font-weight: 600; color: #00d9ff; }
.sent .sender { color: #66d9ff; }
.time { color: #666; }
.edited { color: #888; font-size: 0.75em; margin-left: 8px; }
.quote {
  background: rgba(0,0,0,0.3);
  border-left: 3px solid #00d9ff;
  padding: 10px 14px;
  margin-bottom: 10px;
  border-radius: 8px;
  font-size: 0.9em;
}
.quote-sender { color: #00d9ff; font-weight: 600; font-size: 0.85em; }
.quote-text { color: #aaa; margin-top: 4px; }
.content { line-height: 1.6; word-wrap: break-word; }
.deleted { color: #666; font-style: italic; }
.media {
  display: inline-flex;
  align-items: center;
  background: rgba(0,217,255,0.1);
  padding: 6px 12px;
  border-radius: 8px;
  font-size: 0.9em;
}
</style>
</head>
<body>
<div class="container">
<header>
<h1>%s</h1>
<div class="meta">Exported %s &middot; %d messages</div>
</header>
<div class="chat">
`

const htmlFoot = `</div>
</div>
</body>
</html>
`

func (r *HTMLRenderer) Render(meta export.ConversationMeta, days []export.DayGroup) ([]byte, error) {
	var b strings.Builder
	name := html.EscapeString(meta.Name)
	fmt.Fprintf(&b, htmlHead, name, name, meta.ExportedAt.Format("2006-01-02 15:04:05"), meta.EventCount)

	for _, day := range days {
		fmt.Fprintf(&b, "<div class=\"date-sep\">─── %s ───</div>\n", day.Date.Format("2006-01-02"))
		for _, ev := range day.Events {
			writeHTMLEvent(&b, ev)
		}
	}

	b.WriteString(htmlFoot)
	return []byte(b.String()), nil
}

func writeHTMLEvent(b *strings.Builder, ev export.ChatEvent) {
	class := "received"
	if ev.Sender == "me" {
		class = "sent"
	}
	edited := ""
	if ev.Edited {
		edited = `<span class="edited">(edited)</span>`
	}

	fmt.Fprintf(b, "<div class=\"msg %s\">\n", class)
	fmt.Fprintf(b, "<div class=\"msg-header\"><span class=\"sender\">%s</span><span><span class=\"time\">%s</span>%s</span></div>\n",
		html.EscapeString(ev.Sender), ev.Timestamp.Local().Format("15:04:05"), edited)

	if ev.Quote != nil {
		fmt.Fprintf(b, "<div class=\"quote\"><div class=\"quote-sender\">↩ %s</div><div class=\"quote-text\">%s</div></div>\n",
			html.EscapeString(ev.Quote.Sender), htmlText(ev.Quote.Snippet))
	}

	switch {
	case ev.Kind == export.KindDeleted:
		fmt.Fprintf(b, "<div class=\"content deleted\">%s</div>\n", html.EscapeString(ev.Text))
	case ev.Text != "":
		fmt.Fprintf(b, "<div class=\"content\">%s</div>\n", htmlText(ev.Text))
	case ev.Media != nil:
		fmt.Fprintf(b, "<div class=\"content\"><span class=\"media\">%s</span></div>\n", MediaTag(ev.Media.Kind))
	default:
		b.WriteString("<div class=\"content\"></div>\n")
	}

	b.WriteString("</div>\n")
}

func htmlText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}
