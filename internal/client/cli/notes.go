package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/render"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
)

const noteWidth = 80

func (a *App) Notes(ctx context.Context, _ []string) error {
	if err := a.svc.Notes.Load(a.authed(ctx)); err != nil {
		return err
	}
	render.Notes(a.out, a.svc.Notes.Notes())
	return nil
}

func (a *App) AddNote(ctx context.Context, _ []string) error {
	title, err := a.ask("Enter title")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter note text (markdown)", a.out)
	if err != nil {
		return err
	}
	n, err := a.svc.Notes.Create(a.authed(ctx), title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note #%d created\n", n.ID)
	return nil
}

func (a *App) note(ctx context.Context, args []string) (models.Note, error) {
	id, err := a.idArg(args, "Enter note id")
	if err != nil {
		return models.Note{}, err
	}
	return ensure(a.authed(ctx), id, "note", a.svc.Notes.Note, a.svc.Notes.Load)
}

// ShowNote renders the note body as markdown.
func (a *App) ShowNote(ctx context.Context, args []string) error {
	n, err := a.note(ctx, args)
	if err != nil {
		return err
	}
	render.Note(a.out, n, noteWidth)
	return nil
}

func (a *App) EditNote(ctx context.Context, args []string) error {
	n, err := a.note(ctx, args)
	if err != nil {
		return err
	}

	var patch services.NotePatch
	if v, err := a.ask(fmt.Sprintf("Title (empty keeps %q)", n.Title)); err != nil {
		return err
	} else if v != "" {
		patch.Title = &v
	}
	if v, err := getMultiline(a.reader, "New text (empty keeps the current one)", a.out); err != nil {
		return err
	} else if v != "" {
		patch.Content = &v
	}
	if v, err := a.ask(fmt.Sprintf("Priority %v", models.NotePriorities.Labels())); err != nil {
		return err
	} else if v != "" {
		p, err := models.NotePriorities.Parse(v)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if v, err := a.ask(fmt.Sprintf("Category %v", models.NoteCategories.Labels())); err != nil {
		return err
	} else if v != "" {
		c, err := models.NoteCategories.Parse(v)
		if err != nil {
			return err
		}
		patch.Category = &c
	}

	return a.report(a.svc.Notes.Update(a.authed(ctx), n.ID, patch), "Note saved")
}

func (a *App) DeleteNote(ctx context.Context, args []string) error {
	n, err := a.note(ctx, args)
	if err != nil {
		return err
	}
	return a.report(a.svc.Notes.Delete(a.authed(ctx), n.ID), "Note deleted")
}
