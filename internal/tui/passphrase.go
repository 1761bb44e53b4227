package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptPassphrase shows a masked input field and returns the entered
// passphrase. Escape cancels.
func PromptPassphrase() (string, error) {
	theme := DefaultTheme()
	app := tview.NewApplication()

	input := tview.NewInputField().
		SetLabel("Passphrase: ").
		SetMaskCharacter('*').
		SetFieldWidth(40)
	input.SetBorder(true)
	input.SetTitle(" Database Passphrase ")
	input.SetTitleColor(theme.TitleColor)
	input.SetBorderColor(theme.BorderColor)
	input.SetLabelColor(theme.MenuKeyColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)

	var (
		passphrase string
		cancelled  bool
	)
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			passphrase = input.GetText()
			app.Stop()
		case tcell.KeyEscape:
			cancelled = true
			app.Stop()
		}
	})

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(input, 60, 0, true).
			AddItem(nil, 0, 1, false), 3, 0, true).
		AddItem(nil, 0, 1, false)

	if err := app.SetRoot(flex, true).Run(); err != nil {
		return "", fmt.Errorf("run passphrase prompt: %w", err)
	}
	if cancelled {
		return "", ErrCancelled
	}
	return passphrase, nil
}
