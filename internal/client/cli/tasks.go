package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/render"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
)

const allValues = "all"

// parseStatus accepts a status label ("EnProceso") or a lane title
// ("por hacer"), in any case.
func parseStatus(text string) (models.TaskStatus, error) {
	text = strings.TrimSpace(text)
	if s, err := models.TaskStatuses.Parse(text); err == nil {
		return s, nil
	}
	for _, c := range models.BoardColumns {
		if strings.EqualFold(c.Title, text) {
			return c.Status, nil
		}
	}
	_, err := models.TaskStatuses.Parse(text)
	return "", err
}

// Tasks lists the board, narrowed by the current filter and, when given,
// a search text.
func (a *App) Tasks(ctx context.Context, args []string) error {
	if err := a.svc.Board.Load(a.authed(ctx)); err != nil {
		return err
	}
	f := a.filter
	f.Search = strings.Join(args, " ")
	render.Tasks(a.out, a.svc.Board.Filter(f))
	return nil
}

// Filter sets the category and priority selectors used by tasks and board.
// Without arguments both are cleared.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) > 2 {
		return usage("filter <category|all> <priority|all>")
	}
	var f models.TaskFilter
	if len(args) > 0 && !strings.EqualFold(args[0], allValues) {
		c, err := models.TaskCategories.Parse(args[0])
		if err != nil {
			return err
		}
		f.Category = &c
	}
	if len(args) > 1 && !strings.EqualFold(args[1], allValues) {
		p, err := models.TaskPriorities.Parse(args[1])
		if err != nil {
			return err
		}
		f.Priority = &p
	}
	a.filter = f
	return a.Tasks(ctx, nil)
}

func (a *App) AddTask(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = a.ask("Enter task title"); err != nil {
			return err
		}
	}
	t, err := a.svc.Board.Create(a.authed(ctx), title)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task #%d created in %s\n", t.ID, t.Category)
	return nil
}

// Move changes the status of a task.
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("move <id> <status>")
	}
	id, err := a.idArg(args, "")
	if err != nil {
		return err
	}
	status, err := parseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	ctx = a.authed(ctx)
	if _, err := ensure(ctx, id, "task", a.svc.Board.Task, a.svc.Board.Load); err != nil {
		return err
	}
	return a.report(a.svc.Board.UpdateStatus(ctx, id, status), "Task moved")
}

// Drop is the scripted form of dropping a card on a lane: the payload is
// what a drag would carry.
func (a *App) Drop(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("drop <payload> <column>")
	}
	status, err := parseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	ctx = a.authed(ctx)
	// a malformed payload is left for Drop to refuse
	if id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64); err == nil {
		if _, err := ensure(ctx, id, "task", a.svc.Board.Task, a.svc.Board.Load); err != nil {
			return err
		}
	}
	return a.report(a.svc.Board.Drop(ctx, args[0], status), "Task moved")
}

// EditTask asks for every field; an empty answer keeps the current value.
func (a *App) EditTask(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter task id")
	if err != nil {
		return err
	}
	t, err := ensure(a.authed(ctx), id, "task", a.svc.Board.Task, a.svc.Board.Load)
	if err != nil {
		return err
	}
	render.TaskDetail(a.out, t)

	var patch services.TaskPatch
	if v, err := a.ask("Title"); err != nil {
		return err
	} else if v != "" {
		patch.Title = &v
	}
	if v, err := a.ask("Description"); err != nil {
		return err
	} else if v != "" {
		patch.Description = &v
	}
	if v, err := a.ask("Status (Pendiente, EnProceso, Completada)"); err != nil {
		return err
	} else if v != "" {
		s, err := parseStatus(v)
		if err != nil {
			return err
		}
		patch.Status = &s
	}
	if v, err := a.ask(fmt.Sprintf("Category %v", models.TaskCategories.Labels())); err != nil {
		return err
	} else if v != "" {
		c, err := models.TaskCategories.Parse(v)
		if err != nil {
			return err
		}
		patch.Category = &c
	}
	if v, err := a.ask(fmt.Sprintf("Priority %v", models.TaskPriorities.Labels())); err != nil {
		return err
	} else if v != "" {
		p, err := models.TaskPriorities.Parse(v)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if v, err := a.ask("Due date YYYY-MM-DD (- clears)"); err != nil {
		return err
	} else if v == "-" {
		patch.ClearDueDate = true
	} else if v != "" {
		d, err := models.ParseTimestamp(v)
		if err != nil {
			return err
		}
		patch.DueDate = &d
	}

	return a.report(a.svc.Board.Save(a.authed(ctx), id, patch), "Task saved")
}

func (a *App) DeleteTask(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter task id")
	if err != nil {
		return err
	}
	ctx = a.authed(ctx)
	if _, err := ensure(ctx, id, "task", a.svc.Board.Task, a.svc.Board.Load); err != nil {
		return err
	}
	return a.report(a.svc.Board.Delete(ctx, id), "Task deleted")
}

// Board opens the full-screen board with the current filter.
func (a *App) Board(ctx context.Context, _ []string) error {
	ctx = a.authed(ctx)
	if err := a.svc.Board.Load(ctx); err != nil {
		return err
	}
	return a.runBoard(ctx, a.svc.Board, a.filter)
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	if err := a.svc.Board.Load(a.authed(ctx)); err != nil {
		return err
	}
	render.Stats(a.out, a.svc.Board.Stats())
	return nil
}
