package tui

import (
	"ecosoap/ui/tui/components"

	"github.com/charmbracelet/bubbles/key"
)

type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k formKeys) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.Next, k.Prev, k.Submit}
	if k.Back.Enabled() {
		bindings = append(bindings, k.Back)
	}
	return append(bindings, k.Quit)
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type historyKeys struct {
	components.SelectorKeys
	Refresh key.Binding
	Profile key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func (k historyKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Close,
		k.Refresh, k.Profile, k.Logout, k.Quit,
	}
}

func (k historyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Close},
		{k.Refresh, k.Profile, k.Logout, k.Quit},
	}
}

var quitKey = key.NewBinding(
	key.WithKeys("ctrl+c"),
	key.WithHelp("ctrl+c", "Quit"),
)

var loginKeyMap = formKeys{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "Next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "Previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⤶", "Sign in"),
	),
	Back: key.NewBinding(key.WithDisabled()),
	Quit: quitKey,
}

var profileKeyMap = formKeys{
	Next: loginKeyMap.Next,
	Prev: loginKeyMap.Prev,
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+s"),
		key.WithHelp("⤶", "Save"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Quit: quitKey,
}

var historyKeyMap = historyKeys{
	SelectorKeys: components.DefaultSelectorKeys(),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Refresh"),
	),
	Profile: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "Profile"),
	),
	Logout: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "Sign out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "Quit"),
	),
}
