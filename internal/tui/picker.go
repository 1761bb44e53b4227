// Package tui implements the interactive conversation and format picker
// shown when sxport runs without --chat/--group flags.
package tui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/sxport/internal/chatdb"
	"github.com/matheus3301/sxport/internal/render"
	"github.com/rivo/tview"
)

// ErrCancelled is returned when the user backs out of the picker.
var ErrCancelled = errors.New("selection cancelled")

// Selection is the picker's result: one conversation and the formats to
// render it into.
type Selection struct {
	Conversation chatdb.Conversation
	Formats      []render.Format
}

type formatChoice struct {
	label   string
	formats []render.Format
}

func formatChoices() []formatChoice {
	return []formatChoice{
		{"TXT  - Plain text", []render.Format{render.FormatTXT}},
		{"JSON - Structured data", []render.Format{render.FormatJSON}},
		{"HTML - View in browser", []render.Format{render.FormatHTML}},
		{"ALL  - All formats", []render.Format{render.FormatTXT, render.FormatJSON, render.FormatHTML}},
	}
}

// Picker drives the two-step selection flow: conversation table, then
// format menu.
type Picker struct {
	app   *tview.Application
	pages *tview.Pages
	theme *Theme

	convs     []chatdb.Conversation
	selection *Selection
}

// NewPicker creates a picker with the default theme.
func NewPicker() *Picker {
	return &Picker{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
		theme: DefaultTheme(),
	}
}

// Run blocks until the user selects a conversation and format, or cancels.
func (p *Picker) Run(contacts, groups []chatdb.Conversation, stats *chatdb.Stats) (*Selection, error) {
	p.convs = append(append([]chatdb.Conversation{}, contacts...), groups...)

	p.pages.AddPage("conversations", p.conversationTable(stats), true, true)
	p.pages.AddPage("formats", p.formatList(), true, false)

	p.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			front, _ := p.pages.GetFrontPage()
			if front == "formats" {
				p.pages.SwitchToPage("conversations")
				return nil
			}
			p.selection = nil
			p.app.Stop()
			return nil
		}
		return event
	})

	if err := p.app.SetRoot(p.pages, true).Run(); err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	if p.selection == nil {
		return nil, ErrCancelled
	}
	return p.selection, nil
}

func (p *Picker) conversationTable(stats *chatdb.Stats) tview.Primitive {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	title := " Select Conversation "
	if stats != nil {
		title = fmt.Sprintf(" Select Conversation (%d contacts, %d groups, %d messages) ",
			stats.Contacts, stats.Groups, stats.Messages)
	}
	table.SetTitle(title).SetTitleColor(p.theme.TitleColor)
	table.SetBorderColor(p.theme.BorderColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(p.theme.TableCursorFg).
		Background(p.theme.TableCursorBg))

	for col, name := range []string{" Name", " Type", " Messages"} {
		table.SetCell(0, col, tview.NewTableCell(name).
			SetSelectable(false).
			SetTextColor(p.theme.TableHeaderFg))
	}
	for i, conv := range p.convs {
		row := i + 1
		kind := "contact"
		if conv.IsGroup {
			kind = "group"
		}
		table.SetCell(row, 0, tview.NewTableCell(" "+sanitizeForTerminal(conv.Name)).SetMaxWidth(30).SetExpansion(1))
		table.SetCell(row, 1, tview.NewTableCell(" "+kind).SetMaxWidth(10))
		table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf(" %d", conv.MessageCount)).SetMaxWidth(10).
			SetTextColor(p.theme.CounterColor))
	}
	table.Select(1, 0)

	table.SetSelectedFunc(func(row, _ int) {
		idx := row - 1 // account for header
		if idx < 0 || idx >= len(p.convs) {
			return
		}
		p.selection = &Selection{Conversation: p.convs[idx]}
		p.pages.SwitchToPage("formats")
	})
	return table
}

func (p *Picker) formatList() tview.Primitive {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true)
	list.SetTitle(" Export Format ").SetTitleColor(p.theme.TitleColor)
	list.SetBorderColor(p.theme.BorderColor)
	list.SetMainTextColor(p.theme.FgColor)
	list.SetShortcutColor(p.theme.MenuKeyColor)

	for i, choice := range formatChoices() {
		choice := choice
		list.AddItem(choice.label, "", rune('1'+i), func() {
			if p.selection == nil {
				return
			}
			p.selection.Formats = choice.formats
			p.app.Stop()
		})
	}
	return list
}
