// Package tui is the full-screen kanban board. Cards are moved between
// lanes with the keyboard; each move is an optimistic status change that
// rolls back on screen if the server refuses it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/client/render"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
)

// MovedMsg reports the end of a card move.
type MovedMsg struct {
	Title   string
	Outcome mutation.Outcome
}

// LoadedMsg reports the end of a reload.
type LoadedMsg struct {
	Err error
}

type Board struct {
	ctx    context.Context
	board  services.BoardService
	filter models.TaskFilter
	keys   KeyMap

	width    int
	lane     int
	selected int64
	status   string
	failed   bool
}

// NewBoard builds the model. ctx carries the credentials used for every
// call made from the board.
func NewBoard(ctx context.Context, board services.BoardService, filter models.TaskFilter) Board {
	m := Board{ctx: ctx, board: board, filter: filter, keys: DefaultKeyMap(), width: 120}
	m.selectFirst()
	return m
}

// Run shows the board until the user leaves it.
func Run(ctx context.Context, board services.BoardService, filter models.TaskFilter) error {
	_, err := tea.NewProgram(NewBoard(ctx, board, filter), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Board) Init() tea.Cmd { return nil }

func (m Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case MovedMsg:
		m.failed = !msg.Outcome.OK()
		switch msg.Outcome.State {
		case mutation.Confirmed:
			m.status = fmt.Sprintf("%q moved", msg.Title)
		case mutation.RolledBack:
			m.status = fmt.Sprintf("%q moved back: %v", msg.Title, msg.Outcome.Err)
		default:
			m.status = fmt.Sprintf("%q not moved: %v", msg.Title, msg.Outcome.Err)
		}
		m.follow()
		return m, nil

	case LoadedMsg:
		m.failed = msg.Err != nil
		if msg.Err != nil {
			m.status = fmt.Sprintf("reload failed: %v", msg.Err)
		} else {
			m.status = "board reloaded"
		}
		m.follow()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.MoveLeft):
		cmd := m.move(-1)
		return m, cmd

	case key.Matches(msg, m.keys.MoveRight):
		cmd := m.move(1)
		return m, cmd

	case key.Matches(msg, m.keys.Left):
		m.setLane(m.lane - 1)

	case key.Matches(msg, m.keys.Right):
		m.setLane(m.lane + 1)

	case key.Matches(msg, m.keys.Up):
		m.step(-1)

	case key.Matches(msg, m.keys.Down):
		m.step(1)

	case key.Matches(msg, m.keys.Reload):
		board, ctx := m.board, m.ctx
		return m, func() tea.Msg { return LoadedMsg{Err: board.Load(ctx)} }
	}
	return m, nil
}

// move shifts the selected card dir lanes. The card changes lane at once;
// the returned command waits for the server.
func (m *Board) move(dir int) tea.Cmd {
	task, ok := m.board.Task(m.selected)
	if !ok {
		return nil
	}
	target := m.laneOf(task.Status) + dir
	if target < 0 || target >= len(models.BoardColumns) {
		return nil
	}

	m.lane = target
	m.status = ""
	finish := m.board.BeginStatus(m.ctx, task.ID, models.BoardColumns[target].Status)
	return func() tea.Msg {
		return MovedMsg{Title: task.Title, Outcome: finish()}
	}
}

func (m Board) laneOf(status models.TaskStatus) int {
	for i, c := range models.BoardColumns {
		if c.Status == status {
			return i
		}
	}
	return 0
}

func (m Board) lanes() []services.ColumnView {
	return m.board.Columns(m.filter)
}

func (m *Board) setLane(i int) {
	n := len(models.BoardColumns)
	if i < 0 || i >= n {
		return
	}
	m.lane = i
	tasks := m.lanes()[i].Tasks
	if len(tasks) == 0 {
		m.selected = 0
		return
	}
	m.selected = tasks[0].ID
}

func (m *Board) step(dir int) {
	tasks := m.lanes()[m.lane].Tasks
	for i, t := range tasks {
		if t.ID == m.selected {
			if j := i + dir; j >= 0 && j < len(tasks) {
				m.selected = tasks[j].ID
			}
			return
		}
	}
	if len(tasks) > 0 {
		m.selected = tasks[0].ID
	}
}

// follow keeps the cursor on the selected card after the board changed,
// or falls back to the first card.
func (m *Board) follow() {
	if t, ok := m.board.Task(m.selected); ok && m.filter.Matches(t) {
		m.lane = m.laneOf(t.Status)
		return
	}
	m.selectFirst()
}

func (m *Board) selectFirst() {
	m.selected = 0
	for i, c := range m.lanes() {
		if len(c.Tasks) > 0 {
			m.lane = i
			m.selected = c.Tasks[0].ID
			return
		}
	}
}

func (m Board) View() string {
	var b strings.Builder
	b.WriteString(render.Board(m.lanes(), render.BoardOptions{
		Width:    m.width,
		Selected: m.selected,
		Busy:     m.board.InFlight,
	}))
	b.WriteString("\n")
	if m.status != "" {
		if m.failed {
			b.WriteString(render.Error(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}

	help := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(render.Muted(strings.Join(help, " · ")))
	return b.String()
}
