package models

import (
	"fmt"
	"time"
)

// Note is a markdown note.
type Note struct {
	ID        int64
	Title     string
	Content   string
	Priority  NotePriority
	Category  NoteCategory
	CreatedAt time.Time
}

func (n Note) Key() int64 { return n.ID }

type NoteWire struct {
	ID            int64      `json:"id,omitempty"`
	Titulo        string     `json:"titulo"`
	Contenido     string     `json:"contenido"`
	Prioridad     *int       `json:"prioridad,omitempty"`
	Categoria     *int       `json:"categoria,omitempty"`
	FechaCreacion *Timestamp `json:"fechaCreacion,omitempty"`
}

func (n Note) Wire() (NoteWire, error) {
	w := NoteWire{ID: n.ID, Titulo: n.Title, Contenido: n.Content}
	if n.Priority != "" {
		p, err := NotePriorities.Encode(n.Priority)
		if err != nil {
			return NoteWire{}, err
		}
		w.Prioridad = &p
	}
	if n.Category != "" {
		c, err := NoteCategories.Encode(n.Category)
		if err != nil {
			return NoteWire{}, err
		}
		w.Categoria = &c
	}
	if !n.CreatedAt.IsZero() {
		w.FechaCreacion = &Timestamp{n.CreatedAt}
	}
	return w, nil
}

// Note decodes w; absent prioridad and categoria read as Media and General.
func (w NoteWire) Note() (Note, error) {
	n := Note{
		ID:       w.ID,
		Title:    w.Titulo,
		Content:  w.Contenido,
		Priority: NotePriorityMedium,
		Category: NoteGeneral,
	}
	var err error
	if w.Prioridad != nil {
		if n.Priority, err = NotePriorities.Decode(*w.Prioridad); err != nil {
			return Note{}, fmt.Errorf("note %d: %w", w.ID, err)
		}
	}
	if w.Categoria != nil {
		if n.Category, err = NoteCategories.Decode(*w.Categoria); err != nil {
			return Note{}, fmt.Errorf("note %d: %w", w.ID, err)
		}
	}
	if w.FechaCreacion != nil {
		n.CreatedAt = w.FechaCreacion.Time
	}
	return n, nil
}

func DecodeNotes(ws []NoteWire) ([]Note, error) {
	out := make([]Note, 0, len(ws))
	for _, w := range ws {
		n, err := w.Note()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
