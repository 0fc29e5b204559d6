package services

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_DeleteAllPartialFailure(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	var ids []int64
	for _, d := range []string{"uno", "dos", "tres", "cuatro"} {
		ids = append(ids, srv.SeedActivity(models.Activity{Type: models.ActivityTaskCreated, Description: d}))
	}
	f := NewFeedService(gw, logging.Nop())
	require.NoError(t, f.Load(ctx))

	srv.Fail(http.MethodDelete, "/actividades/"+strconv.FormatInt(ids[2], 10), http.StatusInternalServerError, "falló")
	err := f.DeleteAll(ctx)
	require.Error(t, err)

	var appErr *gateway.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "falló", appErr.Message)

	left := f.Activities()
	require.Len(t, left, 1)
	assert.Equal(t, ids[2], left[0].ID)
	assert.Len(t, srv.Activities(), 1)

	require.NoError(t, f.DeleteAll(ctx))
	assert.Empty(t, f.Activities())
}

func TestFeed_DeleteAllReportsEveryFailure(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	a := srv.SeedActivity(models.Activity{Type: models.ActivityTaskCreated, Description: "uno"})
	b := srv.SeedActivity(models.Activity{Type: models.ActivityTaskCreated, Description: "dos"})
	srv.SeedActivity(models.Activity{Type: models.ActivityTaskCreated, Description: "tres"})
	f := NewFeedService(gw, logging.Nop())
	require.NoError(t, f.Load(ctx))

	for _, id := range []int64{a, b} {
		srv.Fail(http.MethodDelete, "/actividades/"+strconv.FormatInt(id, 10), http.StatusForbidden, "no")
	}
	err := f.DeleteAll(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "activity "+strconv.FormatInt(a, 10))
	assert.ErrorContains(t, err, "activity "+strconv.FormatInt(b, 10))
	assert.Len(t, f.Activities(), 2)
}

func TestFeed_DeleteOne(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	id := srv.SeedActivity(models.Activity{Type: "Desconocida", Description: "x"})
	f := NewFeedService(gw, logging.Nop())
	require.NoError(t, f.Load(ctx))

	assert.Equal(t, "ACTIVIDAD", f.Activities()[0].Type.Label())

	out := f.Delete(ctx, id)
	require.True(t, out.OK(), out.Err)
	assert.Empty(t, f.Activities())
}

func TestGroupActivities(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, loc)

	at := func(id int64, t time.Time) models.Activity {
		return models.Activity{ID: id, CreatedAtStamp: models.Timestamp{Time: t}}
	}
	acts := []models.Activity{
		at(1, now.Add(-10*time.Minute)),
		at(2, now.Add(-1*time.Hour)),
		at(3, now.Add(-30*time.Hour)),
		// 02:00 UTC on the 10th is still the 9th in UTC-3.
		at(4, time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)),
	}

	groups := GroupActivities(acts, now)
	require.Len(t, groups, 3)
	assert.Equal(t, GroupToday, groups[0].Title)
	assert.Equal(t, GroupYesterday, groups[1].Title)
	assert.Equal(t, GroupOlder, groups[2].Title)

	ids := func(g FeedGroup) []int64 {
		var out []int64
		for _, a := range g.Activities {
			out = append(out, a.ID)
		}
		return out
	}
	assert.Equal(t, []int64{1}, ids(groups[0]))
	assert.Equal(t, []int64{2, 4}, ids(groups[1]))
	assert.Equal(t, []int64{3}, ids(groups[2]))
}
