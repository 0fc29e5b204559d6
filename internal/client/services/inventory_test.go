package services

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProduct(t *testing.T) {
	tests := []struct {
		name, price string
		want        models.Product
		field       string
	}{
		{name: " Mouse ", price: "12.5", want: models.Product{Name: "Mouse", Price: 12.5}},
		{name: "Cable", price: "0", want: models.Product{Name: "Cable"}},
		{name: "", price: "1", field: "nombre"},
		{name: "Mouse", price: " ", field: "precio"},
		{name: "Mouse", price: "abc", field: "precio"},
		{name: "Mouse", price: "-1", field: "precio"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.price, func(t *testing.T) {
			got, err := ParseProduct(tt.name, tt.price)
			if tt.field != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInventory_MutationsRefetch(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	inv := NewInventoryService(gw, logging.Nop())
	require.NoError(t, inv.Load(ctx))
	assert.Zero(t, inv.Count())

	require.NoError(t, inv.Create(ctx, "Teclado", "25"))
	require.Equal(t, 1, inv.Count())
	p := inv.Products()[0]
	assert.Equal(t, "Teclado", p.Name)

	require.NoError(t, inv.Update(ctx, p.ID, "Teclado USB", "27.5"))
	got, ok := inv.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, 27.5, got.Price)

	srv.Fail(http.MethodDelete, "/productos/"+strconv.FormatInt(p.ID, 10), http.StatusInternalServerError, "")
	require.Error(t, inv.Delete(ctx, p.ID))
	assert.Equal(t, 1, inv.Count(), "failed delete leaves the list as it was")

	require.NoError(t, inv.Delete(ctx, p.ID))
	assert.Zero(t, inv.Count())

	assert.Equal(t, []string{
		"GET /productos",
		"POST /productos", "GET /productos",
		"PUT /productos/" + strconv.FormatInt(p.ID, 10), "GET /productos",
		"DELETE /productos/" + strconv.FormatInt(p.ID, 10),
		"DELETE /productos/" + strconv.FormatInt(p.ID, 10), "GET /productos",
	}, srv.Requests())
}

func TestInventory_InvalidPriceSendsNothing(t *testing.T) {
	srv, gw, ctx := newAPI(t)
	inv := NewInventoryService(gw, logging.Nop())

	require.ErrorIs(t, inv.Create(ctx, "Teclado", "gratis"), ErrValidation)
	assert.Empty(t, srv.Requests())
}
