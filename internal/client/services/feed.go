package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	activitiesPath = "/actividades"

	// deleteAllLimit bounds the DELETEs DeleteAll keeps open at once.
	deleteAllLimit = 8
)

// Feed group titles, in display order.
const (
	GroupToday     = "Hoy"
	GroupYesterday = "Ayer"
	GroupOlder     = "Anterior"
)

// FeedService shows the server-side activity log. Activities are read-only;
// they can only be removed.
type FeedService interface {
	Load(ctx context.Context) error
	Reset()
	Activities() []models.Activity
	Delete(ctx context.Context, id int64) mutation.Outcome
	DeleteAll(ctx context.Context) error
	Group(now time.Time) []FeedGroup
}

type FeedGroup struct {
	Title      string
	Activities []models.Activity
}

type feedService struct {
	api    API
	store  *store.Store[models.Activity]
	engine *mutation.Engine[models.Activity]
	logger logging.Logger
}

func NewFeedService(api API, logger logging.Logger) FeedService {
	f := &feedService{api: api, logger: logger.With("component", "feed")}
	f.store = store.New[models.Activity](f.fetch)
	f.engine = mutation.New(f.store, f.logger)
	return f
}

func (f *feedService) fetch(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	if err := f.api.JSON(ctx, http.MethodGet, activitiesPath, nil, &out); err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	return out, nil
}

func (f *feedService) Load(ctx context.Context) error { return f.store.Load(ctx) }

func (f *feedService) Reset() { f.store.Reset() }

func (f *feedService) Activities() []models.Activity { return f.store.All() }

func (f *feedService) Delete(ctx context.Context, id int64) mutation.Outcome {
	return f.engine.Delete(ctx, id, f.remove)
}

func (f *feedService) remove(ctx context.Context, a models.Activity) error {
	_, err := send(ctx, f.api, http.MethodDelete, itemPath(activitiesPath, a.ID), nil)
	return err
}

// DeleteAll issues one DELETE per activity concurrently. Activities the
// server removed leave the feed; the others stay and their errors are
// joined into the result.
func (f *feedService) DeleteAll(ctx context.Context) error {
	acts := f.store.All()
	failed := make([]error, len(acts))

	g := new(errgroup.Group)
	g.SetLimit(deleteAllLimit)
	for i, a := range acts {
		g.Go(func() error {
			if err := f.remove(ctx, a); err != nil {
				failed[i] = fmt.Errorf("activity %d: %w", a.ID, err)
				return failed[i]
			}
			return nil
		})
	}
	err := g.Wait()

	deleted := 0
	for i, a := range acts {
		if failed[i] == nil {
			f.store.Remove(a.ID)
			deleted++
		}
	}
	if err != nil {
		f.logger.Warn(ctx, "clear feed incomplete", "deleted", deleted, "failed", len(acts)-deleted)
		return errors.Join(failed...)
	}
	f.logger.Info(ctx, "feed cleared", "deleted", deleted)
	return nil
}

// Group splits the feed by calendar day in now's location. The three
// groups are always present, possibly empty.
func (f *feedService) Group(now time.Time) []FeedGroup {
	return GroupActivities(f.store.All(), now)
}

func GroupActivities(acts []models.Activity, now time.Time) []FeedGroup {
	today := dayStart(now)
	yesterday := today.AddDate(0, 0, -1)

	groups := []FeedGroup{{Title: GroupToday}, {Title: GroupYesterday}, {Title: GroupOlder}}
	for _, a := range acts {
		day := dayStart(a.CreatedAt().In(now.Location()))
		switch {
		case day.Equal(today):
			groups[0].Activities = append(groups[0].Activities, a)
		case day.Equal(yesterday):
			groups[1].Activities = append(groups[1].Activities, a)
		default:
			groups[2].Activities = append(groups[2].Activities, a)
		}
	}
	return groups
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
