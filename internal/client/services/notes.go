package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

const notesPath = "/notas"

type NotesService interface {
	Load(ctx context.Context) error
	Reset()
	Notes() []models.Note
	Note(id int64) (models.Note, bool)
	Create(ctx context.Context, title, content string) (models.Note, error)
	Update(ctx context.Context, id int64, patch NotePatch) mutation.Outcome
	Delete(ctx context.Context, id int64) mutation.Outcome
}

type NotePatch struct {
	Title    *string
	Content  *string
	Priority *models.NotePriority
	Category *models.NoteCategory
}

type notesService struct {
	api    API
	store  *store.Store[models.Note]
	engine *mutation.Engine[models.Note]
	logger logging.Logger
}

func NewNotesService(api API, logger logging.Logger) NotesService {
	n := &notesService{api: api, logger: logger.With("component", "notes")}
	n.store = store.New[models.Note](n.fetch)
	n.engine = mutation.New(n.store, n.logger)
	return n
}

func (n *notesService) fetch(ctx context.Context) ([]models.Note, error) {
	var ws []models.NoteWire
	if err := n.api.JSON(ctx, http.MethodGet, notesPath, nil, &ws); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	return models.DecodeNotes(ws)
}

func (n *notesService) Load(ctx context.Context) error { return n.store.Load(ctx) }

func (n *notesService) Reset() { n.store.Reset() }

func (n *notesService) Notes() []models.Note { return n.store.All() }

func (n *notesService) Note(id int64) (models.Note, bool) { return n.store.Get(id) }

// Create requires both a title and a body.
func (n *notesService) Create(ctx context.Context, title, content string) (models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return models.Note{}, invalid("titulo", "note title and content are required")
	}

	note := models.Note{Title: title, Content: content}
	w, err := note.Wire()
	if err != nil {
		return models.Note{}, err
	}

	resp, err := send(ctx, n.api, http.MethodPost, notesPath, w)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	var created models.NoteWire
	if err := resp.Decode(&created); err == nil && created.ID != 0 {
		if decoded, err := created.Note(); err == nil {
			note = decoded
		}
	}

	if err := n.store.Load(ctx); err != nil {
		n.logger.Warn(ctx, "reload after create failed", "error", err)
		if note.ID != 0 {
			n.store.Upsert(note)
		}
	}
	return note, nil
}

func (n *notesService) Update(ctx context.Context, id int64, patch NotePatch) mutation.Outcome {
	return n.engine.Update(ctx, mutation.Mutation[models.Note]{
		Key:     id,
		Apply:   patch.apply,
		Refresh: true,
		Remote: func(ctx context.Context, next models.Note) error {
			w, err := next.Wire()
			if err != nil {
				return err
			}
			_, err = send(ctx, n.api, http.MethodPut, itemPath(notesPath, next.ID), w)
			return err
		},
	})
}

func (p NotePatch) apply(note models.Note) (models.Note, error) {
	if p.Title != nil {
		note.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
	if note.Title == "" || strings.TrimSpace(note.Content) == "" {
		return note, invalid("titulo", "note title and content are required")
	}
	if p.Priority != nil {
		if !models.NotePriorities.Valid(*p.Priority) {
			_, err := models.NotePriorities.Encode(*p.Priority)
			return note, err
		}
		note.Priority = *p.Priority
	}
	if p.Category != nil {
		if !models.NoteCategories.Valid(*p.Category) {
			_, err := models.NoteCategories.Encode(*p.Category)
			return note, err
		}
		note.Category = *p.Category
	}
	return note, nil
}

func (n *notesService) Delete(ctx context.Context, id int64) mutation.Outcome {
	return n.engine.Delete(ctx, id, func(ctx context.Context, note models.Note) error {
		_, err := send(ctx, n.api, http.MethodDelete, itemPath(notesPath, note.ID), nil)
		return err
	})
}
