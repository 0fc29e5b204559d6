package models

import (
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID          int64
	Title       string
	Description string
	Status      TaskStatus
	Category    TaskCategory
	Priority    TaskPriority
	DueDate     *time.Time
	CreatedAt   time.Time
}

func (t Task) Key() int64 { return t.ID }

// TaskWire is the JSON shape of /tareas.
type TaskWire struct {
	ID               int64      `json:"id,omitempty"`
	Titulo           string     `json:"titulo"`
	Descripcion      string     `json:"descripcion"`
	Estado           int        `json:"estado"`
	Categoria        *int       `json:"categoria,omitempty"`
	Prioridad        *int       `json:"prioridad,omitempty"`
	FechaVencimiento *Timestamp `json:"fechaVencimiento,omitempty"`
	FechaCreacion    *Timestamp `json:"fechaCreacion,omitempty"`
}

// NewTaskRequest is the body of POST /tareas.
type NewTaskRequest struct {
	Titulo    string `json:"titulo"`
	Estado    int    `json:"estado"`
	Categoria int    `json:"categoria"`
	Prioridad int    `json:"prioridad"`
}

// Wire encodes t with ordinals. Unknown labels fail with enum.ErrDecode.
func (t Task) Wire() (TaskWire, error) {
	status, err := TaskStatuses.Encode(t.Status)
	if err != nil {
		return TaskWire{}, err
	}
	category, err := TaskCategories.Encode(t.Category)
	if err != nil {
		return TaskWire{}, err
	}
	priority, err := TaskPriorities.Encode(t.Priority)
	if err != nil {
		return TaskWire{}, err
	}

	w := TaskWire{
		ID:               t.ID,
		Titulo:           t.Title,
		Descripcion:      t.Description,
		Estado:           status,
		Categoria:        &category,
		Prioridad:        &priority,
		FechaVencimiento: stamp(t.DueDate),
	}
	if !t.CreatedAt.IsZero() {
		w.FechaCreacion = &Timestamp{t.CreatedAt}
	}
	return w, nil
}

// Task decodes w. A missing categoria reads as Hardware and a missing
// prioridad as Media; present but unknown ordinals are errors.
func (w TaskWire) Task() (Task, error) {
	status, err := TaskStatuses.Decode(w.Estado)
	if err != nil {
		return Task{}, fmt.Errorf("task %d: %w", w.ID, err)
	}

	category := CategoryHardware
	if w.Categoria != nil {
		if category, err = TaskCategories.Decode(*w.Categoria); err != nil {
			return Task{}, fmt.Errorf("task %d: %w", w.ID, err)
		}
	}

	priority := PriorityMedium
	if w.Prioridad != nil {
		if priority, err = TaskPriorities.Decode(*w.Prioridad); err != nil {
			return Task{}, fmt.Errorf("task %d: %w", w.ID, err)
		}
	}

	t := Task{
		ID:          w.ID,
		Title:       w.Titulo,
		Description: w.Descripcion,
		Status:      status,
		Category:    category,
		Priority:    priority,
		DueDate:     unstamp(w.FechaVencimiento),
	}
	if w.FechaCreacion != nil {
		t.CreatedAt = w.FechaCreacion.Time
	}
	return t, nil
}

// DecodeTasks decodes a whole listing; the first bad element aborts it.
func DecodeTasks(ws []TaskWire) ([]Task, error) {
	out := make([]Task, 0, len(ws))
	for _, w := range ws {
		t, err := w.Task()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// TaskFilter selects tasks for display. Nil Category or Priority means "all".
type TaskFilter struct {
	Search   string
	Category *TaskCategory
	Priority *TaskPriority
}

// Matches applies the search (case-insensitive, over title and
// description) and the category and priority selectors.
func (f TaskFilter) Matches(t Task) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

// Column is one lane of the board.
type Column struct {
	Status TaskStatus
	Title  string
}

var BoardColumns = []Column{
	{Status: StatusPending, Title: "PENDIENTE"},
	{Status: StatusInProgress, Title: "POR HACER"},
	{Status: StatusDone, Title: "RESUELTO"},
}

// ColumnFor returns the board lane of status.
func ColumnFor(status TaskStatus) (Column, bool) {
	for _, c := range BoardColumns {
		if c.Status == status {
			return c, true
		}
	}
	return Column{}, false
}
