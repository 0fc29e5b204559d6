package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

const tasksPath = "/tareas"

// BoardService manages the task board.
//
// Status changes, edits and deletions are optimistic: the board shows the
// new state at once and returns to the previous one if the server refuses.
// Creation waits for the server, since the id comes from it.
type BoardService interface {
	Load(ctx context.Context) error
	// Reset drops everything loaded so far.
	Reset()
	Tasks() []models.Task
	Task(id int64) (models.Task, bool)
	Create(ctx context.Context, title string) (models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) mutation.Outcome
	BeginStatus(ctx context.Context, id int64, status models.TaskStatus) func() mutation.Outcome
	Save(ctx context.Context, id int64, patch TaskPatch) mutation.Outcome
	Delete(ctx context.Context, id int64) mutation.Outcome
	Drop(ctx context.Context, payload string, status models.TaskStatus) mutation.Outcome
	Filter(f models.TaskFilter) []models.Task
	Columns(f models.TaskFilter) []ColumnView
	Stats() BoardStats
	InFlight(id int64) bool
}

// TaskPatch lists the fields an edit changes; nil fields are kept.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Category     *models.TaskCategory
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

type ColumnView struct {
	models.Column
	Tasks []models.Task
}

type BoardStats struct {
	Total    int
	ByStatus map[models.TaskStatus]int
	Urgent   int
}

type boardService struct {
	api    API
	store  *store.Store[models.Task]
	engine *mutation.Engine[models.Task]
	logger logging.Logger
}

func NewBoardService(api API, logger logging.Logger) BoardService {
	b := &boardService{api: api, logger: logger.With("component", "board")}
	b.store = store.New[models.Task](b.fetch)
	b.engine = mutation.New(b.store, b.logger)
	return b
}

func (b *boardService) fetch(ctx context.Context) ([]models.Task, error) {
	var ws []models.TaskWire
	if err := b.api.JSON(ctx, http.MethodGet, tasksPath, nil, &ws); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return models.DecodeTasks(ws)
}

func (b *boardService) Load(ctx context.Context) error {
	return b.store.Load(ctx)
}

func (b *boardService) Reset() { b.store.Reset() }

func (b *boardService) Tasks() []models.Task { return b.store.All() }

func (b *boardService) Task(id int64) (models.Task, bool) { return b.store.Get(id) }

func (b *boardService) InFlight(id int64) bool { return b.engine.InFlight(id) }

// Create posts a new pending, medium-priority task whose category is
// guessed from the title, then reloads the board.
func (b *boardService) Create(ctx context.Context, title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, invalid("titulo", "task title is required")
	}

	category := models.DetectCategory(title)
	req := models.NewTaskRequest{Titulo: title}
	var err error
	if req.Estado, err = models.TaskStatuses.Encode(models.StatusPending); err != nil {
		return models.Task{}, err
	}
	if req.Categoria, err = models.TaskCategories.Encode(category); err != nil {
		return models.Task{}, err
	}
	if req.Prioridad, err = models.TaskPriorities.Encode(models.PriorityMedium); err != nil {
		return models.Task{}, err
	}

	resp, err := send(ctx, b.api, http.MethodPost, tasksPath, req)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	created := models.Task{Title: title, Status: models.StatusPending, Category: category, Priority: models.PriorityMedium}
	var w models.TaskWire
	if err := resp.Decode(&w); err == nil && w.ID != 0 {
		if t, err := w.Task(); err == nil {
			created = t
		}
	}

	if err := b.store.Load(ctx); err != nil {
		b.logger.Warn(ctx, "reload after create failed", "error", err)
		if created.ID != 0 {
			b.store.Upsert(created)
		}
	}
	b.logger.Info(ctx, "task created", "id", created.ID, "category", category)
	return created, nil
}

func (b *boardService) put(ctx context.Context, t models.Task) error {
	w, err := t.Wire()
	if err != nil {
		return err
	}
	_, err = send(ctx, b.api, http.MethodPut, itemPath(tasksPath, t.ID), w)
	return err
}

// UpdateStatus moves a task to another lane.
func (b *boardService) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) mutation.Outcome {
	return b.BeginStatus(ctx, id, status)()
}

// BeginStatus moves the task locally and returns the call that confirms the
// move with the server. See mutation.Engine.Begin.
func (b *boardService) BeginStatus(ctx context.Context, id int64, status models.TaskStatus) func() mutation.Outcome {
	return b.engine.Begin(ctx, mutation.Mutation[models.Task]{
		Key: id,
		Apply: func(t models.Task) (models.Task, error) {
			if !models.TaskStatuses.Valid(status) {
				_, err := models.TaskStatuses.Encode(status)
				return t, err
			}
			t.Status = status
			return t, nil
		},
		Remote: b.put,
	})
}

// Save applies an edit and reloads the board once the server accepts it.
func (b *boardService) Save(ctx context.Context, id int64, patch TaskPatch) mutation.Outcome {
	return b.engine.Update(ctx, mutation.Mutation[models.Task]{
		Key:     id,
		Apply:   patch.apply,
		Remote:  b.put,
		Refresh: true,
	})
}

func (p TaskPatch) apply(t models.Task) (models.Task, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return t, invalid("titulo", "task title is required")
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		if !models.TaskStatuses.Valid(*p.Status) {
			_, err := models.TaskStatuses.Encode(*p.Status)
			return t, err
		}
		t.Status = *p.Status
	}
	if p.Category != nil {
		if !models.TaskCategories.Valid(*p.Category) {
			_, err := models.TaskCategories.Encode(*p.Category)
			return t, err
		}
		t.Category = *p.Category
	}
	if p.Priority != nil {
		if !models.TaskPriorities.Valid(*p.Priority) {
			_, err := models.TaskPriorities.Encode(*p.Priority)
			return t, err
		}
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		d := *p.DueDate
		t.DueDate = &d
	}
	return t, nil
}

func (b *boardService) Delete(ctx context.Context, id int64) mutation.Outcome {
	return b.engine.Delete(ctx, id, func(ctx context.Context, t models.Task) error {
		_, err := send(ctx, b.api, http.MethodDelete, itemPath(tasksPath, t.ID), nil)
		return err
	})
}

// Drop handles a card dropped onto a lane. payload is the drag transfer
// data, which carries the task id as text.
func (b *boardService) Drop(ctx context.Context, payload string, status models.TaskStatus) mutation.Outcome {
	id, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return mutation.Outcome{State: mutation.Rejected, Err: invalid("taskId", "invalid drag payload %q", payload)}
	}
	return b.UpdateStatus(ctx, id, status)
}

func (b *boardService) Filter(f models.TaskFilter) []models.Task {
	return b.store.Select(f.Matches)
}

func (b *boardService) Columns(f models.TaskFilter) []ColumnView {
	tasks := b.Filter(f)
	out := make([]ColumnView, 0, len(models.BoardColumns))
	for _, c := range models.BoardColumns {
		view := ColumnView{Column: c}
		for _, t := range tasks {
			if t.Status == c.Status {
				view.Tasks = append(view.Tasks, t)
			}
		}
		out = append(out, view)
	}
	return out
}

func (b *boardService) Stats() BoardStats {
	st := BoardStats{ByStatus: make(map[models.TaskStatus]int)}
	for _, t := range b.store.All() {
		st.Total++
		st.ByStatus[t.Status]++
		if t.Priority == models.PriorityUrgent {
			st.Urgent++
		}
	}
	return st
}
