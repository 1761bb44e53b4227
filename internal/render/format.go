package render

import (
	"fmt"

	"github.com/matheus3301/sxport/internal/export"
)

// Format tags the available output formats.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTXT, FormatJSON, FormatHTML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want txt, json or html)", s)
}

// Ext returns the artifact file extension.
func (f Format) Ext() string { return string(f) }

// Renderer projects a grouped event sequence into one output format.
// Implementations are total: any well-formed input, including an empty
// day sequence, produces a valid artifact. Input is never mutated.
type Renderer interface {
	Format() Format
	Render(meta export.ConversationMeta, days []export.DayGroup) ([]byte, error)
}

// RenderError wraps a failure in one renderer. Other formats of the same
// invocation remain independently retriable.
type RenderError struct {
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// For returns the renderer for a format.
func For(f Format) (Renderer, error) {
	switch f {
	case FormatTXT:
		return &TXTRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// All returns one renderer per supported format, in display order.
func All() []Renderer {
	return []Renderer{&TXTRenderer{}, &JSONRenderer{}, &HTMLRenderer{}}
}

// MediaTag returns the bracketed marker for a media kind, e.g. "[IMAGE]".
func MediaTag(kind export.MediaKind) string {
	switch kind {
	case export.MediaImage:
		return "[IMAGE]"
	case export.MediaFile:
		return "[FILE]"
	case export.MediaVoice:
		return "[VOICE]"
	case export.MediaVideo:
		return "[VIDEO]"
	default:
		return "[MEDIA]"
	}
}
