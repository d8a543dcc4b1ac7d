package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the root model reacts to.
type keyMap struct {
	Back     key.Binding
	Forward  key.Binding
	Finer    key.Binding
	Coarser  key.Binding
	Now      key.Binding
	Zodiac   key.Binding
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	Chart    key.Binding
	Wheel    key.Binding
	Devas    key.Binding
	Events   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "step back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "step forward"),
		),
		Finer: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller step"),
		),
		Coarser: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger step"),
		),
		Now: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "now"),
		),
		Zodiac: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sidereal/tropical"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "select"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "select"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		Chart:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "chart")),
		Wheel:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "wheel")),
		Devas:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "devas")),
		Events: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "events")),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Forward, k.Coarser, k.Now, k.Zodiac, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Forward, k.Finer, k.Coarser, k.Now},
		{k.Up, k.Down, k.Zodiac},
		{k.NextView, k.Chart, k.Wheel, k.Devas, k.Events},
		{k.Help, k.Quit},
	}
}
