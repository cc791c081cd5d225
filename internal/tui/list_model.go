package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/taskflow/internal/app"
	"github.com/balkashynov/taskflow/internal/config"
	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/notify"
	"github.com/balkashynov/taskflow/internal/view"
)

// Mode is what the list view is currently doing
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeForm
	ModeConfirm
)

type formPurpose int

const (
	formAdd formPurpose = iota
	formEdit
	formImport
)

// frameMsg drives counters, row effects and toast expiry
type frameMsg time.Time

// Options configures the list view
type Options struct {
	Keys      KeyMap
	ExportDir string
	Clock     func() time.Time
	Copy      func(string) error
}

// ListModel is the interactive task list
type ListModel struct {
	manager *app.Manager
	view    *view.TaskView
	sink    *notify.Sink
	anim    *Animator
	keys    KeyMap
	shimmer *Shimmer
	now     func() time.Time
	copy    func(string) error
	export  string

	width  int
	height int

	mode      Mode
	selected  int // index into the visible rows
	search    textinput.Model
	form      FormModel
	purpose   formPurpose
	editID    int
	confirmID int
	ticking   bool
}

// NewListModel creates the list view. anim must be the animator the
// manager's view was built with.
func NewListModel(manager *app.Manager, sink *notify.Sink, anim *Animator, opts Options) ListModel {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = func(string) error { return fmt.Errorf("clipboard not configured") }
	}

	keys := opts.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = NewKeyMap(config.Default().Keys)
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or description"
	search.CharLimit = 100
	search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	return ListModel{
		manager: manager,
		view:    manager.View(),
		sink:    sink,
		anim:    anim,
		keys:    keys,
		shimmer: NewShimmer(DefaultShimmerConfig(), now()),
		now:     now,
		copy:    copyFn,
		export:  opts.ExportDir,
		search:  search,
		ticking: true,
	}
}

// Init starts the first animation frame; the loop stops itself once
// nothing is moving
func (m ListModel) Init() tea.Cmd {
	return tickFrame()
}

// Mode returns the current interaction mode
func (m ListModel) Mode() Mode {
	return m.mode
}

// Selected returns the id of the highlighted task, or 0
func (m ListModel) Selected() int {
	visible := m.view.Visible()
	if m.selected < 0 || m.selected >= len(visible) {
		return 0
	}
	return visible[m.selected].ID
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.view.Summary().Tick()
		m.anim.Advance()
		m.sink.Active()
		if m.animating() {
			return m, tickFrame()
		}
		m.ticking = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(20, m.width-20)
		if m.mode == ModeForm {
			m.form, _ = m.form.update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case ModeSearch:
			m, cmd = m.handleSearchKeys(msg)
		case ModeForm:
			m, cmd = m.handleFormMsg(msg)
		case ModeConfirm:
			m = m.handleConfirmKeys(msg)
		default:
			var quit bool
			m, cmd, quit = m.handleBrowseKeys(msg)
			if quit {
				return m, tea.Quit
			}
		}
		m.clampSelection()
		frames := m.startFrames()
		return m, tea.Batch(cmd, frames)
	}

	if m.mode == ModeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ListModel) handleBrowseKeys(msg tea.KeyMsg) (ListModel, tea.Cmd, bool) {
	id := m.Selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, nil, true

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.shimmer.Reset(m.now())
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.view.Visible())-1 {
			m.selected++
			m.shimmer.Reset(m.now())
		}

	case key.Matches(msg, m.keys.Add):
		return m.openForm(formAdd, 0, NewForm("Create New Task", AddTaskFields()))

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.manager.Store().Get(id); ok {
			return m.openForm(formEdit, id, NewForm(fmt.Sprintf("Edit Task #%d", id), EditTaskFields(task.Title, task.Description)))
		}

	case key.Matches(msg, m.keys.Import):
		return m.openForm(formImport, 0, NewForm("Import Tasks", []Field{
			{Name: "path", Label: "File", Placeholder: "path to a .json or .yaml backup", CharLimit: 500},
		}))

	case key.Matches(msg, m.keys.Toggle):
		if id != 0 {
			m.manager.ToggleTask(id)
		}

	case key.Matches(msg, m.keys.Delete):
		if id != 0 {
			m.mode = ModeConfirm
			m.confirmID = id
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(m.view.Query())
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd, false

	case key.Matches(msg, m.keys.Export):
		m.manager.Export(m.export, app.FormatJSON)

	case key.Matches(msg, m.keys.Copy):
		if id != 0 {
			m.manager.CopyTitle(id, m.copy)
		}

	case key.Matches(msg, m.keys.ClearFilters):
		m.manager.ClearFilters()
		m.search.SetValue("")

	case key.Matches(msg, m.keys.CyclePriority):
		m.manager.CycleFilter(true)

	case key.Matches(msg, m.keys.CycleStatus):
		m.manager.CycleFilter(false)
	}
	return m, nil, false
}

func (m ListModel) openForm(purpose formPurpose, id int, form FormModel) (ListModel, tea.Cmd, bool) {
	m.mode = ModeForm
	m.purpose = purpose
	m.editID = id
	if m.width > 0 {
		form, _ = form.update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	m.form = form
	return m, form.Init(), false
}

// handleSearchKeys narrows the list as the query is typed
func (m ListModel) handleSearchKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.manager.Search("")
		m.mode = ModeBrowse
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = ModeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.Query() {
		m.manager.Search(m.search.Value())
		m.selected = 0
	}
	return m, cmd
}

func (m ListModel) handleFormMsg(msg tea.Msg) (ListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)

	switch {
	case m.form.Cancelled():
		m.mode = ModeBrowse
		return m, nil
	case !m.form.Submitted():
		return m, cmd
	}

	m.mode = ModeBrowse
	switch m.purpose {
	case formAdd:
		priority, err := models.ParsePriority(m.form.Value("priority"))
		if err != nil {
			priority = models.Priority(strings.TrimSpace(m.form.Value("priority")))
		}
		if _, ok := m.manager.AddTask(m.form.Value("title"), m.form.Value("description"), priority); ok {
			m.selectID(m.manager.Store().NextID() - 1)
		}
	case formEdit:
		m.manager.EditTask(m.editID, answers{
			"title":       m.form.Value("title"),
			"description": m.form.Value("description"),
		})
	case formImport:
		if m.manager.ImportFile(strings.TrimSpace(m.form.Value("path"))) {
			m.selected = 0
		}
	}
	return m, nil
}

func (m ListModel) handleConfirmKeys(msg tea.KeyMsg) ListModel {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.anim.PlaceNextRemoval(m.selected)
		if !m.manager.DeleteTask(m.confirmID) {
			m.anim.PlaceNextRemoval(-1)
		}
	case key.Matches(msg, m.keys.Cancel):
	default:
		return m
	}
	m.mode = ModeBrowse
	m.confirmID = 0
	return m
}

func (m *ListModel) selectID(id int) {
	for i, el := range m.view.Visible() {
		if el.ID == id {
			m.selected = i
			return
		}
	}
}

func (m *ListModel) clampSelection() {
	n := len(m.view.Visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m ListModel) animating() bool {
	s := m.view.Summary()
	counting := !s.Total.Done() || !s.Pending.Done() || !s.Completed.Done()
	return counting || m.anim.Busy() || m.sink.Len() > 0
}

// startFrames schedules the next frame unless one is already pending
func (m *ListModel) startFrames() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return tickFrame()
}

func tickFrame() tea.Cmd {
	return tea.Tick(view.StepInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// answers replays values already collected by an in-app form
type answers map[string]string

func (a answers) Prompt(field, _ string) (string, bool) {
	v, ok := a[field]
	return v, ok
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	if m.mode == ModeForm {
		body = lipgloss.Place(m.width, max(m.height-8, 10), lipgloss.Center, lipgloss.Center, m.form.View())
	} else {
		body = m.renderTable(m.width - 2)
	}

	sections := []string{m.renderHeader(), m.renderFilterBar(), body}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ListModel) renderHeader() string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("taskflow")
	s := m.view.Summary()
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	number := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText))

	counters := fmt.Sprintf("%s %s  %s %s  %s %s",
		label.Render("Total"), number.Render(fmt.Sprint(s.Total.Value)),
		label.Render("Pending"), toneStyle(view.ToneWarning).Bold(true).Render(fmt.Sprint(s.Pending.Value)),
		label.Render("Completed"), toneStyle(view.ToneSuccess).Bold(true).Render(fmt.Sprint(s.Completed.Value)),
	)
	gap := max(1, m.width-lipgloss.Width(logo)-lipgloss.Width(counters)-2)
	return " " + logo + strings.Repeat(" ", gap) + counters
}

func (m ListModel) renderFilterBar() string {
	f := m.view.Filter()
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	active := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	value := func(v string) string {
		if v == "" || v == models.FilterAll {
			return dim.Render(models.FilterAll)
		}
		return active.Render(v)
	}
	bar := fmt.Sprintf(" Priority: %s   Status: %s", value(f.Priority), value(f.Status))
	if q := m.view.Query(); q != "" && m.mode != ModeSearch {
		bar += fmt.Sprintf("   Search: %s", active.Render(q))
	}
	return bar
}

type row struct {
	el    view.Element
	ghost bool
}

// rows merges visible elements with removal ghosts at their old positions
func (m ListModel) rows() []row {
	visible := m.view.Visible()
	out := make([]row, 0, len(visible))
	for _, el := range visible {
		out = append(out, row{el: el})
	}
	for _, g := range m.anim.Ghosts() {
		ghost := row{el: ghostElement(g.Task), ghost: true}
		idx := g.Index
		if idx < 0 || idx > len(out) {
			idx = len(out)
		}
		out = append(out[:idx], append([]row{ghost}, out[idx:]...)...)
	}
	return out
}

func ghostElement(t models.Task) view.Element {
	priority, ptone := view.PriorityLabel(t.Priority)
	status, stone := view.StatusLabel(t.Status)
	return view.Element{
		ID: t.ID, Title: t.Title, Priority: t.Priority, Status: t.Status,
		PriorityLabel: priority, PriorityTone: ptone,
		StatusLabel: status, StatusTone: stone,
		Checked: t.IsCompleted(),
	}
}

func (m ListModel) renderTable(width int) string {
	var b strings.Builder
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	rows := m.rows()
	if m.view.Empty() && len(rows) == 0 {
		hint := "No tasks yet. Press " + m.keys.Add.Help().Key + " to add your first task."
		return border.Render(empty.Render(hint))
	}
	if len(rows) == 0 {
		return border.Render(empty.Render("No tasks match the current filters."))
	}

	idWidth, priorityWidth, statusWidth, dateWidth := 5, 8, 10, 12
	titleWidth := max(20, width-idWidth-priorityWidth-statusWidth-dateWidth-12)

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(header.Render(fmt.Sprintf("    %-*s %-*s %-*s %-*s %s",
		idWidth, "ID", titleWidth, "TITLE", priorityWidth, "PRIORITY", statusWidth, "STATUS", "CREATED")))
	b.WriteString("\n")

	selectedID := m.Selected()
	now := m.now()
	for _, r := range rows {
		b.WriteString(m.renderRow(r, selectedID, titleWidth, idWidth, priorityWidth, statusWidth, now))
		b.WriteString("\n")
	}
	return border.Render(strings.TrimRight(b.String(), "\n"))
}

func (m ListModel) renderRow(r row, selectedID, titleWidth, idWidth, priorityWidth, statusWidth int, now time.Time) string {
	el := r.el
	check := "[ ]"
	if el.Checked {
		check = "[x]"
	}

	title := fmt.Sprintf("%-*s", titleWidth, truncate(el.Title, titleWidth))
	priority := fmt.Sprintf("%-*s", priorityWidth, el.PriorityLabel)
	status := fmt.Sprintf("%-*s", statusWidth, el.StatusLabel)
	id := fmt.Sprintf("%-*s", idWidth, fmt.Sprintf("#%d", el.ID))

	if r.ghost {
		ghost := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
		return ghost.Render(fmt.Sprintf("  %s %s %s %s %s removing", check, id, title, priority, status))
	}

	switch {
	case m.anim.Highlighted(el.ID):
		title = m.shimmer.Render(title, now)
	case el.ID == selectedID:
		title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(title)
	case el.Checked:
		title = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(title)
	}

	statusStyle := toneStyle(el.StatusTone)
	if m.anim.Flashing(el.ID) {
		statusStyle = statusStyle.Bold(true).Underline(true)
	}

	line := fmt.Sprintf("%s %s %s %s %s %s",
		check, id, title,
		toneStyle(el.PriorityTone).Render(priority),
		statusStyle.Render(status),
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(el.DateLabel))

	if m.anim.Fading(el.ID) {
		line = lipgloss.NewStyle().Faint(true).Render(line)
	}
	if el.ID == selectedID {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("▶ ") + line
	}
	return "  " + line
}

func (m ListModel) renderToasts() string {
	active := m.sink.Active()
	if len(active) == 0 {
		return ""
	}
	now := m.sink.Now()
	toasts := make([]string, 0, len(active))
	for _, n := range active {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(kindColor(n.Kind)).
			Foreground(kindColor(n.Kind)).
			Padding(0, 1)
		if n.StateAt(now) == notify.StateDismissing {
			style = style.Faint(true)
		}
		toasts = append(toasts, style.Render(n.Message))
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, toasts...))
}

func (m ListModel) renderFooter() string {
	switch m.mode {
	case ModeSearch:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Background(lipgloss.Color(ColorBorder)).
			Padding(0, 1).
			Width(m.width - 2).
			Render(m.search.View())
	case ModeConfirm:
		title := ""
		if task, ok := m.manager.Store().Get(m.confirmID); ok {
			title = task.Title
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Bold(true).
			Render(fmt.Sprintf(" Delete \"%s\"? (%s/%s)", truncate(title, 50), m.keys.Confirm.Help().Key, m.keys.Cancel.Help().Key))
	}

	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Width(m.width).
		Align(lipgloss.Center).
		Render(strings.Join(parts, " · "))
}
