package model

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines a set of keybindings. To work for help it must satisfy
// key.Map.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Open    key.Binding
	Action  key.Binding
	Toolbar key.Binding
	Menu    key.Binding
	Detail  key.Binding
	Filter  key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Open, k.Menu, k.Filter, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Detail},
		{k.Refresh, k.Toolbar, k.Filter, k.Back},
		{k.Action, k.Menu, k.Help, k.Quit},
	}
}

func defaultKeyMap(actionLabel string) keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		Action: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", actionLabel+" on row"),
		),
		Toolbar: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", actionLabel),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "row actions"),
		),
		Detail: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
