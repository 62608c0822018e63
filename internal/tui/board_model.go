package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
	"github.com/balkashynov/tend/internal/parser"
)

// Pane is the part of the board that receives keys
type Pane int

const (
	PaneInput Pane = iota
	PaneContexts
	PaneTodos
)

// boardContext is one entry of the context list: everything, a value or a habit.
type boardContext struct {
	Label  string
	Color  string
	Parent models.ParentRef
}

var allContext = boardContext{Label: "All todos", Parent: models.NoParent()}

type contextsLoadedMsg struct{ contexts []boardContext }

type todosLoadedMsg struct {
	parent models.ParentRef
	todos  []models.Todo
}

type todoCreatedMsg struct{ todo *models.Todo }

type todoCompletedMsg struct{ todo *models.Todo }

type todoDeletedMsg struct{ id uint }

type errMsg struct{ err error }

// BoardModel lists incomplete todos for the active context and adds new
// ones into it. Picking a value or habit makes new todos children of it.
type BoardModel struct {
	ctx     context.Context
	backend Backend
	userID  uint
	keys    keyMap

	contexts      []boardContext
	active        int
	contextCursor int

	todos      []models.Todo
	todoCursor int

	input textinput.Model
	pane  Pane

	status string
	err    error
	added  int

	width  int
	height int
}

// NewBoardModel creates a board focused on the input, showing all todos
func NewBoardModel(ctx context.Context, backend Backend, userID uint) BoardModel {
	input := textinput.New()
	input.Placeholder = "What needs doing? (+value:N, +habit:N)"
	input.CharLimit = 255
	input.Width = 50
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	input.Focus()

	return BoardModel{
		ctx:      ctx,
		backend:  backend,
		userID:   userID,
		keys:     defaultKeyMap(),
		contexts: []boardContext{allContext},
		input:    input,
		pane:     PaneInput,
	}
}

// Init loads the contexts and the todos of the default context
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadContexts(), m.loadTodos())
}

func (m BoardModel) activeContext() boardContext {
	if m.active < 0 || m.active >= len(m.contexts) {
		return allContext
	}
	return m.contexts[m.active]
}

func (m BoardModel) loadContexts() tea.Cmd {
	ctx, backend, userID := m.ctx, m.backend, m.userID
	return func() tea.Msg {
		values, err := backend.ListValues(ctx, userID)
		if err != nil {
			return errMsg{err}
		}
		habits, err := backend.ListHabits(ctx, userID)
		if err != nil {
			return errMsg{err}
		}

		contexts := []boardContext{allContext}
		for _, v := range values {
			contexts = append(contexts, boardContext{
				Label:  v.Description,
				Color:  v.Color,
				Parent: models.ValueRef(v.ItemID),
			})
		}
		for _, h := range habits {
			c := boardContext{Label: h.Description, Parent: models.HabitRef(h.ItemID)}
			if h.Value != nil {
				c.Color = h.Value.Color
			}
			contexts = append(contexts, c)
		}
		return contextsLoadedMsg{contexts}
	}
}

func (m BoardModel) loadTodos() tea.Cmd {
	ctx, backend, userID := m.ctx, m.backend, m.userID
	parent := m.activeContext().Parent
	return func() tea.Msg {
		var (
			todos []models.Todo
			err   error
		)
		switch parent.Kind {
		case models.ParentValue:
			todos, err = backend.ListIncompleteByValue(ctx, userID, parent.ID)
		case models.ParentHabit:
			todos, err = backend.ListIncompleteByHabit(ctx, userID, parent.ID)
		default:
			todos, err = backend.ListIncomplete(ctx, userID)
		}
		if err != nil {
			return errMsg{err}
		}
		return todosLoadedMsg{parent: parent, todos: todos}
	}
}

// createRequest builds the request for the typed line. An inline
// +value/+habit/+input reference wins over the active context.
func (m BoardModel) createRequest(line string) (db.CreateTodoRequest, error) {
	parsed := parser.ParseContent(line)
	if len(parsed.Errors) > 0 {
		return db.CreateTodoRequest{}, fmt.Errorf("%s", strings.Join(parsed.Errors, "; "))
	}

	req := db.CreateTodoRequest{Content: parsed.Content, Type: parsed.Type, ParentID: parsed.ParentID}
	if parsed.ParentID == nil {
		parent := m.activeContext().Parent
		req.Type = parent.Type()
		if !parent.IsNone() {
			id := parent.ID
			req.ParentID = &id
		}
	}
	return req, nil
}

func (m BoardModel) createTodo(req db.CreateTodoRequest) tea.Cmd {
	ctx, backend, userID := m.ctx, m.backend, m.userID
	return func() tea.Msg {
		todo, err := backend.CreateTodo(ctx, userID, req)
		if err != nil {
			return errMsg{err}
		}
		return todoCreatedMsg{todo}
	}
}

func (m BoardModel) completeTodo(id uint) tea.Cmd {
	ctx, backend, userID := m.ctx, m.backend, m.userID
	return func() tea.Msg {
		todo, err := backend.SetCompleted(ctx, userID, id, true)
		if err != nil {
			return errMsg{err}
		}
		return todoCompletedMsg{todo}
	}
}

func (m BoardModel) deleteTodo(id uint) tea.Cmd {
	ctx, backend, userID := m.ctx, m.backend, m.userID
	return func() tea.Msg {
		if err := backend.DeleteTodo(ctx, userID, id); err != nil {
			return errMsg{err}
		}
		return todoDeletedMsg{id}
	}
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case contextsLoadedMsg:
		current := m.activeContext().Parent
		m.contexts = msg.contexts
		m.active = 0
		for i, c := range m.contexts {
			if c.Parent == current {
				m.active = i
			}
		}
		m.contextCursor = clamp(m.contextCursor, len(m.contexts))
		return m, nil

	case todosLoadedMsg:
		// A slow load for a context we already left is dropped
		if msg.parent != m.activeContext().Parent {
			return m, nil
		}
		m.todos = msg.todos
		m.todoCursor = clamp(m.todoCursor, len(m.todos))
		return m, nil

	case todoCreatedMsg:
		m.added++
		m.err = nil
		m.status = fmt.Sprintf("Added #%d", msg.todo.ItemID)
		m.input.Reset()
		return m, m.loadTodos()

	case todoCompletedMsg:
		m.err = nil
		m.status = fmt.Sprintf("Completed #%d", msg.todo.ItemID)
		return m, m.loadTodos()

	case todoDeletedMsg:
		m.err = nil
		m.status = fmt.Sprintf("Deleted #%d", msg.id)
		return m, m.loadTodos()

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.pane == PaneInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Focus) {
		return m.cycleFocus(msg.String() == "shift+tab"), nil
	}

	if m.pane == PaneInput {
		switch {
		case key.Matches(msg, m.keys.Select):
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			req, err := m.createRequest(line)
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, m.createTodo(req)
		case key.Matches(msg, m.keys.Back):
			return m.setPane(PaneTodos), nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case m.pane == PaneContexts && key.Matches(msg, m.keys.Select):
		if m.contextCursor == m.active {
			return m.setPane(PaneInput), nil
		}
		m.active = m.contextCursor
		m.todos = nil
		m.todoCursor = 0
		m.status = ""
		return m.setPane(PaneInput), m.loadTodos()
	case m.pane == PaneTodos && key.Matches(msg, m.keys.Complete):
		if todo, ok := m.selectedTodo(); ok {
			return m, m.completeTodo(todo.ItemID)
		}
	case m.pane == PaneTodos && key.Matches(msg, m.keys.Delete):
		if todo, ok := m.selectedTodo(); ok {
			return m, m.deleteTodo(todo.ItemID)
		}
	}
	return m, nil
}

func (m BoardModel) cycleFocus(backwards bool) BoardModel {
	order := []Pane{PaneInput, PaneContexts, PaneTodos}
	step := 1
	if backwards {
		step = len(order) - 1
	}
	return m.setPane(order[(int(m.pane)+step)%len(order)])
}

func (m BoardModel) setPane(p Pane) BoardModel {
	m.pane = p
	if p == PaneInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

func (m *BoardModel) moveCursor(delta int) {
	switch m.pane {
	case PaneContexts:
		m.contextCursor = clamp(m.contextCursor+delta, len(m.contexts))
	case PaneTodos:
		m.todoCursor = clamp(m.todoCursor+delta, len(m.todos))
	}
}

func (m BoardModel) selectedTodo() (models.Todo, bool) {
	if m.todoCursor < 0 || m.todoCursor >= len(m.todos) {
		return models.Todo{}, false
	}
	return m.todos[m.todoCursor], true
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m BoardModel) View() string {
	paneStyle := func(p Pane) lipgloss.Style {
		border := ColorBorder
		if m.pane == p {
			border = ColorAccentMain
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1)
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	active := m.activeContext()
	inputBorder := ColorInputBorder
	if active.Color != "" {
		inputBorder = active.Color
	}
	inputStyle := paneStyle(PaneInput).Width(60)
	if m.pane == PaneInput {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color(inputBorder))
	}
	inputBox := inputStyle.Render(titleStyle.Render("Add to "+active.Label) + "\n" + m.input.View())

	contextsBox := paneStyle(PaneContexts).Width(28).Render(m.renderContexts(titleStyle))
	todosBox := paneStyle(PaneTodos).Width(50).Render(m.renderTodos(titleStyle))

	var b strings.Builder
	b.WriteString(inputBox)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, contextsBox, todosBox))
	b.WriteString("\n")

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
		b.WriteString(okStyle.Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	var help []string
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return b.String()
}

func (m BoardModel) renderContexts(titleStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Contexts"))
	for i, c := range m.contexts {
		b.WriteString("\n")
		cursor := "  "
		if m.pane == PaneContexts && i == m.contextCursor {
			cursor = "> "
		}
		swatch := " "
		if c.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		if i == m.active {
			style = style.Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
		}
		b.WriteString(cursor + swatch + " " + style.Render(truncate(c.Label, 20)))
	}
	return b.String()
}

func (m BoardModel) renderTodos(titleStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Incomplete (%d)", len(m.todos))))
	if len(m.todos) == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("Nothing to do here"))
		return b.String()
	}
	for i, t := range m.todos {
		b.WriteString("\n")
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if m.pane == PaneTodos && i == m.todoCursor {
			cursor = "> "
			style = style.Foreground(lipgloss.Color(ColorAccentBright))
		}
		line := fmt.Sprintf("#%d %s", t.ItemID, truncate(t.Content, 36))
		b.WriteString(cursor + style.Render(line) + m.parentTag(t))
	}
	return b.String()
}

func (m BoardModel) parentTag(t models.Todo) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	switch {
	case t.Value != nil:
		return style.Foreground(lipgloss.Color(t.Value.Color)).Render("  " + t.Value.Description)
	case t.Habit != nil:
		return style.Render("  " + t.Habit.Description)
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
