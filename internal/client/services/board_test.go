package services

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/dmitrijs2005/itcontroller/internal/client/enum"
	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBoard(t *testing.T) (BoardService, func() []string, context.Context, []int64) {
	t.Helper()
	srv, gw, ctx := newAPI(t)
	ids := []int64{
		srv.SeedTask(models.TaskWire{Titulo: "Cambiar toner", Estado: 0, Categoria: ptr(0), Prioridad: ptr(1)}),
		srv.SeedTask(models.TaskWire{Titulo: "Instalar office", Descripcion: "licencia nueva", Estado: 1, Categoria: ptr(1), Prioridad: ptr(3)}),
		srv.SeedTask(models.TaskWire{Titulo: "Revisar switch", Estado: 2, Categoria: ptr(2), Prioridad: ptr(2)}),
	}
	b := NewBoardService(gw, logging.Nop())
	require.NoError(t, b.Load(ctx))
	return b, srv.Requests, ctx, ids
}

func TestBoard_LoadAndColumns(t *testing.T) {
	b, _, _, ids := seedBoard(t)

	require.Len(t, b.Tasks(), 3)
	cols := b.Columns(models.TaskFilter{})
	require.Len(t, cols, 3)
	assert.Equal(t, "PENDIENTE", cols[0].Title)
	assert.Equal(t, "POR HACER", cols[1].Title)
	assert.Equal(t, "RESUELTO", cols[2].Title)
	assert.Equal(t, ids[0], cols[0].Tasks[0].ID)
	assert.Equal(t, ids[1], cols[1].Tasks[0].ID)
	assert.Equal(t, ids[2], cols[2].Tasks[0].ID)
}

func TestBoard_CreateDetectsCategory(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	b := NewBoardService(gw, logging.Nop())

	task, err := b.Create(ctx, "  revisar vpn oficina ")
	require.NoError(t, err)

	assert.NotZero(t, task.ID)
	assert.Equal(t, models.CategorySoftware, task.Category)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)

	stored, ok := srv.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, "revisar vpn oficina", stored.Titulo)
	assert.Equal(t, 0, stored.Estado)
	assert.Equal(t, 1, *stored.Categoria)
	assert.Equal(t, 1, *stored.Prioridad)

	_, ok = b.Task(task.ID)
	assert.True(t, ok, "board reloaded after create")
}

func TestBoard_CreateRequiresTitle(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	b := NewBoardService(gw, logging.Nop())

	_, err := b.Create(ctx, "   ")
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, srv.Requests())
}

func TestBoard_UpdateStatusIsOptimistic(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	id := srv.SeedTask(models.TaskWire{Titulo: "Cambiar toner", Categoria: ptr(0), Prioridad: ptr(1)})
	b := NewBoardService(gw, logging.Nop())
	require.NoError(t, b.Load(ctx))

	var during models.Task
	var busy bool
	srv.OnRequest(http.MethodPut, "/tareas/"+strconv.FormatInt(id, 10), func() {
		during, _ = b.Task(id)
		busy = b.InFlight(id)
	})

	out := b.UpdateStatus(ctx, id, models.StatusDone)
	require.True(t, out.OK(), out.Err)

	assert.Equal(t, models.StatusDone, during.Status, "local state changed before the server answered")
	assert.True(t, busy)
	assert.False(t, b.InFlight(id))

	stored, _ := srv.Task(id)
	assert.Equal(t, 2, stored.Estado)
	assert.Equal(t, models.ActivityTaskCompleted, srv.Activities()[0].Type)
}

func TestBoard_UpdateStatusRollsBack(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	id := srv.SeedTask(models.TaskWire{Titulo: "Cambiar toner", Estado: 1, Categoria: ptr(0), Prioridad: ptr(1)})
	b := NewBoardService(gw, logging.Nop())
	require.NoError(t, b.Load(ctx))

	srv.Fail(http.MethodPut, "/tareas/"+strconv.FormatInt(id, 10), http.StatusInternalServerError, "boom")

	out := b.UpdateStatus(ctx, id, models.StatusDone)
	assert.Equal(t, mutation.RolledBack, out.State)

	var appErr *gateway.ApplicationError
	require.ErrorAs(t, out.Err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "boom", appErr.Message)

	task, _ := b.Task(id)
	assert.Equal(t, models.StatusInProgress, task.Status)
}

func TestBoard_ExpiredSessionRollsBack(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	id := srv.SeedTask(models.TaskWire{Titulo: "Cambiar toner", Categoria: ptr(0), Prioridad: ptr(1)})
	b := NewBoardService(gw, logging.Nop())
	require.NoError(t, b.Load(ctx))

	srv.ExpireSessions()
	out := b.UpdateStatus(ctx, id, models.StatusInProgress)

	assert.Equal(t, mutation.RolledBack, out.State)
	assert.ErrorIs(t, out.Err, gateway.ErrAuthExpired)
	task, _ := b.Task(id)
	assert.Equal(t, models.StatusPending, task.Status)
}

func TestBoard_SaveRefreshes(t *testing.T) {
	b, _, ctx, ids := seedBoard(t)

	out := b.Save(ctx, ids[0], TaskPatch{
		Title:    ptr("Cambiar toner HP"),
		Priority: ptr(models.PriorityUrgent),
		Category: ptr(models.CategoryMaintenance),
	})
	require.True(t, out.OK(), out.Err)
	assert.NoError(t, out.RefreshErr)

	task, ok := b.Task(ids[0])
	require.True(t, ok)
	assert.Equal(t, "Cambiar toner HP", task.Title)
	assert.Equal(t, models.PriorityUrgent, task.Priority)
	assert.Equal(t, models.CategoryMaintenance, task.Category)
	assert.False(t, task.CreatedAt.IsZero(), "server fields survive the refresh")
}

func TestBoard_SaveRejectsBadPatch(t *testing.T) {
	b, requests, ctx, ids := seedBoard(t)
	before := len(requests())

	out := b.Save(ctx, ids[0], TaskPatch{Title: ptr(" ")})
	assert.Equal(t, mutation.Rejected, out.State)
	assert.ErrorIs(t, out.Err, ErrValidation)

	out = b.Save(ctx, ids[0], TaskPatch{Priority: ptr(models.TaskPriority("Critica"))})
	assert.Equal(t, mutation.Rejected, out.State)
	assert.ErrorIs(t, out.Err, enum.ErrDecode)

	assert.Len(t, requests(), before)
	task, _ := b.Task(ids[0])
	assert.Equal(t, "Cambiar toner", task.Title)
}

func TestBoard_DeleteRestoresPosition(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		ids = append(ids, srv.SeedTask(models.TaskWire{Titulo: title, Categoria: ptr(0), Prioridad: ptr(1)}))
	}
	b := NewBoardService(gw, logging.Nop())
	require.NoError(t, b.Load(ctx))

	srv.Fail(http.MethodDelete, "/tareas/"+strconv.FormatInt(ids[1], 10), http.StatusBadRequest, "")
	out := b.Delete(ctx, ids[1])
	assert.Equal(t, mutation.RolledBack, out.State)

	tasks := b.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, ids[1], tasks[1].ID)

	out = b.Delete(ctx, ids[1])
	require.True(t, out.OK(), out.Err)
	assert.Len(t, b.Tasks(), 2)
	assert.Len(t, srv.Tasks(), 2)
}

func TestBoard_Drop(t *testing.T) {
	b, _, ctx, ids := seedBoard(t)

	out := b.Drop(ctx, "not-a-number", models.StatusDone)
	assert.Equal(t, mutation.Rejected, out.State)
	assert.ErrorIs(t, out.Err, ErrValidation)

	out = b.Drop(ctx, strconv.FormatInt(ids[0], 10), models.TaskStatus("Archivada"))
	assert.Equal(t, mutation.Rejected, out.State)
	assert.ErrorIs(t, out.Err, enum.ErrDecode)

	out = b.Drop(ctx, " "+strconv.FormatInt(ids[0], 10)+" ", models.StatusInProgress)
	require.True(t, out.OK(), out.Err)
	task, _ := b.Task(ids[0])
	assert.Equal(t, models.StatusInProgress, task.Status)
}

func TestBoard_FilterAndStats(t *testing.T) {
	b, _, _, ids := seedBoard(t)

	got := b.Filter(models.TaskFilter{Search: "LICENCIA"})
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	got = b.Filter(models.TaskFilter{Category: ptr(models.CategoryNetwork)})
	require.Len(t, got, 1)
	assert.Equal(t, ids[2], got[0].ID)

	assert.Empty(t, b.Filter(models.TaskFilter{Search: "toner", Priority: ptr(models.PriorityHigh)}))

	st := b.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.ByStatus[models.StatusPending])
	assert.Equal(t, 1, st.ByStatus[models.StatusInProgress])
	assert.Equal(t, 1, st.ByStatus[models.StatusDone])
	assert.Equal(t, 1, st.Urgent)
}
