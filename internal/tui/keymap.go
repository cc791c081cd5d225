package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/balkashynov/taskflow/internal/config"
)

// KeyMap holds the list view bindings
type KeyMap struct {
	Quit          key.Binding
	Add           key.Binding
	Up            key.Binding
	Down          key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	Edit          key.Binding
	Search        key.Binding
	Export        key.Binding
	Import        key.Binding
	Copy          key.Binding
	ClearFilters  key.Binding
	CyclePriority key.Binding
	CycleStatus   key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
}

// NewKeyMap builds bindings from the configured key names
func NewKeyMap(k config.Keymap) KeyMap {
	bind := func(keys, fallback, help string) key.Binding {
		names := config.Bindings(keys)
		if len(names) == 0 {
			names = config.Bindings(fallback)
		}
		label := names[0]
		if label == " " {
			label = "space"
		}
		return key.NewBinding(key.WithKeys(names...), key.WithHelp(label, help))
	}

	d := config.Default().Keys
	return KeyMap{
		Quit:          bind(k.Quit, d.Quit, "quit"),
		Add:           bind(k.Add, d.Add, "new"),
		Up:            bind(k.Up, d.Up, "up"),
		Down:          bind(k.Down, d.Down, "down"),
		Toggle:        bind(k.Toggle, d.Toggle, "toggle"),
		Delete:        bind(k.Delete, d.Delete, "delete"),
		Edit:          bind(k.Edit, d.Edit, "edit"),
		Search:        bind(k.Search, d.Search, "search"),
		Export:        bind(k.Export, d.Export, "export"),
		Import:        bind(k.Import, d.Import, "import"),
		Copy:          bind(k.Copy, d.Copy, "copy"),
		ClearFilters:  bind(k.ClearFilters, d.ClearFilters, "clear filters"),
		CyclePriority: bind(k.CyclePriority, d.CyclePriority, "priority"),
		CycleStatus:   bind(k.CycleStatus, d.CycleStatus, "status"),
		Confirm:       bind(k.Confirm, d.Confirm, "confirm"),
		Cancel:        bind(k.Cancel, d.Cancel, "cancel"),
	}
}

// ShortHelp lists the bindings shown in the help bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Search, k.CyclePriority, k.CycleStatus, k.ClearFilters, k.Export, k.Import, k.Copy, k.Quit}
}
