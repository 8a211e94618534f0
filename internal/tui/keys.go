package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Custom  key.Binding
	Delete  key.Binding
	Goal    key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Export  key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab     key.Binding
	Help    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding

	// Presets is filled from the configured quick-add amounts.
	Presets []key.Binding
}

// presetKeys are assigned to quick-add amounts in order.
var presetKeys = []string{"z", "x", "c", "v", "b"}

var keys = keyMap{
	Custom: key.NewBinding(
		key.WithKeys("n", "a"),
		key.WithHelp("n", "add amount"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "remove"),
	),
	Goal: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "goal"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset day"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "today"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "hourly"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "settings"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// withPresets returns a copy of k with one binding per preset amount.
// Amounts past the available keys are dropped.
func (k keyMap) withPresets(amounts []int) keyMap {
	k.Presets = nil
	for i, ml := range amounts {
		if i >= len(presetKeys) {
			break
		}
		k.Presets = append(k.Presets, key.NewBinding(
			key.WithKeys(presetKeys[i]),
			key.WithHelp(presetKeys[i], "+"+formatML(ml)),
		))
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	out := append([]key.Binding{}, k.Presets...)
	return append(out, k.Custom, k.Delete, k.Goal, k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{k.Custom, k.Delete, k.Goal, k.Reset},
		{k.Refresh, k.Export},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
	if len(k.Presets) > 0 {
		groups = append([][]key.Binding{k.Presets}, groups...)
	}
	return groups
}
