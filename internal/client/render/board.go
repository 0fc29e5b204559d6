package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
	"github.com/dustin/go-humanize"
)

const (
	minColumnWidth = 18
	pendingMark    = "⟳"
	dueDateLayout  = "02/01/2006"
)

// BoardOptions tunes Board. Selected highlights one card; Busy marks cards
// with a change still waiting for the server.
type BoardOptions struct {
	Width    int
	Selected int64
	Busy     func(id int64) bool
}

// Board draws the lanes side by side.
func Board(cols []services.ColumnView, opts BoardOptions) string {
	if len(cols) == 0 {
		return ""
	}
	width := opts.Width / len(cols)
	if width < minColumnWidth {
		width = minColumnWidth
	}
	// border and padding take four cells
	inner := width - 4

	lanes := make([]string, 0, len(cols))
	for _, c := range cols {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(c.Title), mutedStyle.Render(fmt.Sprintf("(%d)", len(c.Tasks))))
		if len(c.Tasks) == 0 {
			b.WriteString(mutedStyle.Render("sin tareas"))
		}
		for i, t := range c.Tasks {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(card(t, inner, opts))
		}
		lanes = append(lanes, columnStyle.Width(inner).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}

func card(t models.Task, width int, opts BoardOptions) string {
	head := fmt.Sprintf("#%d %s", t.ID, t.Title)
	if opts.Busy != nil && opts.Busy(t.ID) {
		head += " " + pendingMark
	}
	if opts.Selected != 0 && opts.Selected == t.ID {
		head = selectedStyle.Render(head)
	}
	meta := fmt.Sprintf("%s · %s", t.Category, priority(string(t.Priority)))
	if t.DueDate != nil {
		meta += " · " + t.DueDate.Format(dueDateLayout)
	}
	return lipgloss.NewStyle().Width(width).Render(head + "\n" + mutedStyle.Render(meta))
}

// Tasks writes one line per task, as in the list view.
func Tasks(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}
	for _, t := range tasks {
		col, _ := models.ColumnFor(t.Status)
		fmt.Fprintf(w, "%-5d %-11s %-14s %-8s %s\n", t.ID, col.Title, t.Category, t.Priority, t.Title)
	}
}

// TaskDetail writes every field of t.
func TaskDetail(w io.Writer, t models.Task) {
	col, _ := models.ColumnFor(t.Status)
	fmt.Fprintf(w, "%s\n", Title(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	fmt.Fprintf(w, "Estado:     %s\n", col.Title)
	fmt.Fprintf(w, "Categoría:  %s\n", t.Category)
	fmt.Fprintf(w, "Prioridad:  %s\n", t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(w, "Vence:      %s\n", t.DueDate.Format(dueDateLayout))
	}
	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Creada el:  %s\n", t.CreatedAt.Format(dueDateLayout))
	}
	if t.Description != "" {
		fmt.Fprintf(w, "\n%s\n", t.Description)
	}
}

// Stats writes the per-lane counters.
func Stats(w io.Writer, st services.BoardStats) {
	fmt.Fprintf(w, "Total:      %s\n", humanize.Comma(int64(st.Total)))
	for _, c := range models.BoardColumns {
		fmt.Fprintf(w, "%-11s %s\n", c.Title+":", humanize.Comma(int64(st.ByStatus[c.Status])))
	}
	fmt.Fprintf(w, "Urgentes:   %s\n", humanize.Comma(int64(st.Urgent)))
}
