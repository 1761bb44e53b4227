package tui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the selection UI.
type Theme struct {
	BgColor       tcell.Color
	FgColor       tcell.Color
	BorderColor   tcell.Color
	TableHeaderFg tcell.Color
	TableCursorFg tcell.Color
	TableCursorBg tcell.Color
	TitleColor    tcell.Color
	MenuKeyColor  tcell.Color
	CounterColor  tcell.Color
}

// DefaultTheme returns the dark default theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:       tcell.ColorBlack,
		FgColor:       tcell.ColorCadetBlue,
		BorderColor:   tcell.ColorDodgerBlue,
		TableHeaderFg: tcell.ColorWhite,
		TableCursorFg: tcell.ColorBlack,
		TableCursorBg: tcell.ColorAqua,
		TitleColor:    tcell.ColorFuchsia,
		MenuKeyColor:  tcell.ColorDodgerBlue,
		CounterColor:  tcell.ColorPapayaWhip,
	}
}
