package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/attio-tui/attio-tui/internal/commands"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Enter     key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Palette   key.Binding
	Help      key.Binding
	ForceQuit key.Binding

	// Shortcuts come from the command catalogue.
	Shortcuts []key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		Palette: key.NewBinding(
			key.WithKeys(":", "ctrl+k"),
			key.WithHelp(":", "commands"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Shortcuts: shortcutBindings(),
	}
}

func shortcutBindings() []key.Binding {
	var out []key.Binding
	for _, c := range commands.All() {
		if c.Shortcut == "" {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(c.Shortcut),
			key.WithHelp(c.Shortcut, strings.ToLower(c.Label)),
		))
	}
	return out
}

// shortcutCommand finds the catalogue command bound to a key press.
func shortcutCommand(msg tea.KeyMsg) (commands.Command, bool) {
	k := msg.String()
	for _, c := range commands.All() {
		if c.Shortcut != "" && c.Shortcut == k {
			return c, true
		}
	}
	return commands.Command{}, false
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.NextPane, k.NextTab, k.Palette, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Enter},
		{k.NextPane, k.PrevPane, k.NextTab, k.PrevTab},
		{k.Palette, k.Help, k.ForceQuit},
	}
	// Split the catalogue shortcuts into columns of five.
	for i := 0; i < len(k.Shortcuts); i += 5 {
		end := minInt(i+5, len(k.Shortcuts))
		cols = append(cols, k.Shortcuts[i:end])
	}
	return cols
}

// Ensure we implement bubbles/help KeyMap interface.
var _ help.KeyMap = keyMap{}

func translateNavKeys(msg tea.KeyMsg) tea.KeyMsg {
	switch msg.String() {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return msg
	}
}
