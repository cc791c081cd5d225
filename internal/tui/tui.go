// Package tui is the terminal render sink for taskflow.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/taskflow/internal/app"
	"github.com/balkashynov/taskflow/internal/notify"
)

// Run starts the interactive task list and blocks until the user quits
func Run(manager *app.Manager, sink *notify.Sink, anim *Animator, opts Options) error {
	model := NewListModel(manager, sink, anim, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunForm shows a standalone form and returns it once submitted or cancelled
func RunForm(title string, fields []Field) (FormModel, error) {
	form := NewForm(title, fields)
	form.standalone = true

	finalModel, err := tea.NewProgram(form).Run()
	if err != nil {
		return form, err
	}
	if f, ok := finalModel.(FormModel); ok {
		return f, nil
	}
	return form, nil
}

// Prompter asks for each field in its own one-line form
type Prompter struct{}

var _ app.Prompter = Prompter{}

// Prompt implements app.Prompter
func (Prompter) Prompt(field, current string) (string, bool) {
	label := strings.ToUpper(field[:1]) + field[1:]
	form, err := RunForm("Edit "+field, []Field{{Name: field, Label: label, Value: current, CharLimit: 500}})
	if err != nil || !form.Submitted() {
		return "", false
	}
	return form.Value(field), true
}
