package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// SafeName reduces a chat display name to a filesystem-safe slug.
// Anything outside letters, digits, '-' and '_' is dropped; runs of
// whitespace collapse to a single underscore.
func SafeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastSpace := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteByte('_')
			}
			lastSpace = true
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		s = "chat"
	}
	return s
}

// ExportFilename builds "<safe-name>_<timestamp>.<ext>" in dir.
func ExportFilename(dir, chatName, ext string, at time.Time) string {
	base := fmt.Sprintf("%s_%s.%s", SafeName(chatName), at.Format("20060102_150405"), ext)
	return filepath.Join(dir, base)
}
