package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field is one prompt in a form
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
}

// FormModel steps through its fields one at a time. Enter on the last
// field submits; esc at any step cancels the whole form.
type FormModel struct {
	title      string
	fields     []Field
	inputs     []textinput.Model
	step       int
	width      int
	submitted  bool
	cancelled  bool
	standalone bool
}

// NewForm creates a form with the first field focused
func NewForm(title string, fields []Field) FormModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Width = 60
		in.Placeholder = f.Placeholder
		in.CharLimit = f.CharLimit
		if in.CharLimit == 0 {
			in.CharLimit = 200
		}
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		in.SetValue(f.Value)
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return FormModel{title: title, fields: fields, inputs: inputs}
}

// AddTaskFields are the prompts for a new task
func AddTaskFields() []Field {
	return []Field{
		{Name: "title", Label: "Title", Placeholder: "Enter task title... (required)"},
		{Name: "description", Label: "Description", Placeholder: "Details (Enter to skip)", CharLimit: 500},
		{Name: "priority", Label: "Priority", Placeholder: "high/medium/low or 1/2/3 (Enter for medium)", CharLimit: 10},
	}
}

// EditTaskFields are the prompts for editing an existing task
func EditTaskFields(title, description string) []Field {
	return []Field{
		{Name: "title", Label: "Title", Placeholder: "Enter task title... (required)", Value: title},
		{Name: "description", Label: "Description", Placeholder: "Details (Enter to leave empty)", Value: description, CharLimit: 500},
	}
}

func (f FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model so a form can run as its own program
func (f FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := f.update(msg)
	if next.standalone && (next.submitted || next.cancelled) {
		return next, tea.Quit
	}
	return next, cmd
}

func (f FormModel) update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		w := f.width*2/3 - 10
		if w < 30 {
			w = 30
		}
		if w > 80 {
			w = 80
		}
		for i := range f.inputs {
			f.inputs[i].Width = w
		}
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			f.cancelled = true
			return f, nil
		case "enter":
			if f.step == len(f.inputs)-1 {
				f.submitted = true
				return f, nil
			}
			return f.focus(f.step + 1)
		case "tab", "down":
			return f.focus(f.step + 1)
		case "shift+tab", "up":
			return f.focus(f.step - 1)
		}
	}

	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.step], cmd = f.inputs[f.step].Update(msg)
	return f, cmd
}

func (f FormModel) focus(step int) (FormModel, tea.Cmd) {
	if step < 0 || step >= len(f.inputs) {
		return f, nil
	}
	f.inputs[f.step].Blur()
	f.step = step
	return f, f.inputs[f.step].Focus()
}

// Submitted reports whether the last field was confirmed
func (f FormModel) Submitted() bool {
	return f.submitted
}

// Cancelled reports whether the user backed out
func (f FormModel) Cancelled() bool {
	return f.cancelled
}

// Value returns the current text of the named field
func (f FormModel) Value(name string) string {
	for i, field := range f.fields {
		if field.Name == name {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// View renders the form
func (f FormModel) View() string {
	if f.standalone && (f.submitted || f.cancelled) {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, field := range f.fields {
		switch {
		case i == f.step:
			b.WriteString(current.Render("▶ " + field.Label))
			b.WriteString("\n  ")
			b.WriteString(f.inputs[i].View())
		case strings.TrimSpace(f.inputs[i].Value()) != "":
			b.WriteString(filled.Render(fmt.Sprintf("✓ %s: %s", field.Label, truncate(f.inputs[i].Value(), 40))))
		default:
			b.WriteString(pending.Render("  " + field.Label))
		}
		b.WriteString("\n")
	}

	help := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true)
	b.WriteString("\n")
	b.WriteString(help.Render("enter next/save · tab/shift+tab move · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
