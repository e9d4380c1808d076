package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/models"
)

const dueLayout = "2006-01-02 15:04"

type browserModel struct {
	ctx   context.Context
	todos TodoService

	items   []models.Todo
	idx     int
	loading bool
	spinner spinner.Model

	// completed is the active list filter; nil shows every todo.
	completed  *bool
	confirming bool

	status  string
	lastErr error

	copyToClipboard func(string) error
}

func newBrowserModel(ctx context.Context, todos TodoService) browserModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return browserModel{
		ctx:             ctx,
		todos:           todos,
		loading:         true,
		spinner:         s,
		copyToClipboard: clipboard.WriteAll,
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m browserModel) load() tea.Cmd {
	completed := m.completed
	return func() tea.Msg {
		todos, err := m.todos.ListTodos(m.ctx, completed)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m browserModel) current() (models.Todo, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Todo{}, false
	}
	return m.items[m.idx], true
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todosLoadedMsg:
		m.loading = false
		m.lastErr = msg.err
		if msg.err == nil {
			m.items = msg.todos
			m.clampCursor()
		}
		return m, nil

	case todoCompletedMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.replace(msg.todo)
			m.status = "completed " + msg.todo.Description
		}
		return m, nil

	case todoDeletedMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			for i, t := range m.items {
				if t.ID == msg.id {
					m.items = append(m.items[:i], m.items[i+1:]...)
					break
				}
			}
			m.clampCursor()
			m.status = "deleted"
		}
		return m, nil

	case copiedMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.status = "id copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	if m.confirming {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirming = false
			todo, ok := m.current()
			if !ok {
				return m, nil
			}
			return m, m.deleteTodo(todo)
		case key.Matches(msg, keys.no):
			m.confirming = false
		}
		return m, nil
	}

	m.status = ""
	m.lastErr = nil

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.complete):
		if todo, ok := m.current(); ok && !todo.IsCompleted {
			return m, m.completeTodo(todo)
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.confirming = true
		}
	case key.Matches(msg, keys.copy):
		if todo, ok := m.current(); ok {
			return m, m.copyID(todo)
		}
	case key.Matches(msg, keys.filter):
		m.completed = nextFilter(m.completed)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.load())
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.load())
	}

	return m, nil
}

func (m browserModel) completeTodo(todo models.Todo) tea.Cmd {
	return func() tea.Msg {
		done, err := m.todos.CompleteTodo(m.ctx, todo.ID)
		return todoCompletedMsg{todo: done, err: err}
	}
}

func (m browserModel) deleteTodo(todo models.Todo) tea.Cmd {
	return func() tea.Msg {
		return todoDeletedMsg{id: todo.ID, err: m.todos.DeleteTodo(m.ctx, todo.ID)}
	}
}

func (m browserModel) copyID(todo models.Todo) tea.Cmd {
	return func() tea.Msg {
		if err := m.copyToClipboard(todo.ID.String()); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

// replace swaps the stored copy of todo, dropping it when it no longer
// matches the active filter.
func (m *browserModel) replace(todo models.Todo) {
	for i, t := range m.items {
		if t.ID != todo.ID {
			continue
		}
		if m.completed != nil && *m.completed != todo.IsCompleted {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.clampCursor()
			return
		}
		m.items[i] = todo
		return
	}
}

func (m *browserModel) clampCursor() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

// nextFilter cycles all -> open -> done -> all.
func nextFilter(completed *bool) *bool {
	switch {
	case completed == nil:
		open := false
		return &open
	case !*completed:
		done := true
		return &done
	default:
		return nil
	}
}

func filterName(completed *bool) string {
	switch {
	case completed == nil:
		return "all"
	case *completed:
		return "done"
	default:
		return "open"
	}
}

func (m browserModel) View() string {
	var b strings.Builder

	header := titleStyle.Render("go-todo-keeper") + "  " + helpStyle.Render("["+filterName(m.completed)+"]")
	if m.loading {
		header += "  " + m.spinner.View()
	}
	b.WriteString(header + "\n\n")

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString("loading...\n")
	case len(m.items) == 0:
		b.WriteString("no todos\n")
	default:
		for i, t := range m.items {
			b.WriteString(renderTodo(t, i == m.idx) + "\n")
		}
	}

	if m.confirming {
		if todo, ok := m.current(); ok {
			b.WriteString("\n" + overlayBoxStyle.Render("delete \""+todo.Description+"\"?\n\ny yes    n no") + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.lastErr != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+humanizeError(m.lastErr)) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter complete  d delete  c copy id  f filter  r refresh  q quit"))
	return appStyle.Render(b.String())
}

func renderTodo(t models.Todo, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	mark := "[ ]"
	if t.IsCompleted {
		mark = "[x]"
	}

	line := fmt.Sprintf("%s %-6s %s", mark, t.Priority, t.Description)
	if t.DueDate != nil {
		line += "  due " + t.DueDate.Local().Format(dueLayout)
	}
	if t.IsCompleted {
		line = doneStyle.Render(line)
	}
	return cursor + line
}
