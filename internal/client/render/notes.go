package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
)

const defaultWrap = 80

// Markdown renders content for the terminal. When the renderer cannot be
// built or fails, the raw text is returned.
func Markdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func Notes(w io.Writer, notes []models.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(w, "%-5d %-14s %-6s %s\n", n.ID, n.Category, n.Priority, n.Title)
	}
}

// Note writes the header of n followed by its rendered body.
func Note(w io.Writer, n models.Note, width int) {
	fmt.Fprintln(w, Title(n.Title))
	fmt.Fprintln(w, Muted(fmt.Sprintf("%s · %s", n.Category, n.Priority)))
	fmt.Fprintln(w, Markdown(n.Content, width))
}
