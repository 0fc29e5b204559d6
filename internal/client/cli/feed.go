package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/render"
)

func (a *App) Feed(ctx context.Context, _ []string) error {
	if err := a.svc.Feed.Load(a.authed(ctx)); err != nil {
		return err
	}
	now := a.now()
	render.Feed(a.out, a.svc.Feed.Group(now), now)
	return nil
}

func (a *App) DeleteActivity(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter activity id")
	if err != nil {
		return err
	}
	ctx = a.authed(ctx)
	if _, err := ensure(ctx, id, "activity", a.activity, a.svc.Feed.Load); err != nil {
		return err
	}
	return a.report(a.svc.Feed.Delete(ctx, id), "Activity deleted")
}

func (a *App) activity(id int64) (models.Activity, bool) {
	for _, act := range a.svc.Feed.Activities() {
		if act.ID == id {
			return act, true
		}
	}
	return models.Activity{}, false
}

// ClearFeed deletes every activity after confirmation.
func (a *App) ClearFeed(ctx context.Context, _ []string) error {
	ctx = a.authed(ctx)
	if err := a.svc.Feed.Load(ctx); err != nil {
		return err
	}
	n := len(a.svc.Feed.Activities())
	if n == 0 {
		fmt.Fprintln(a.out, "No activity")
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete ALL %d activities? This cannot be undone.", n), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Feed.DeleteAll(ctx); err != nil {
		return fmt.Errorf("some activities were not deleted: %w", err)
	}
	fmt.Fprintln(a.out, "Feed cleared")
	return nil
}
