package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/itcontroller/internal/client/apitest"
	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
	"github.com/dmitrijs2005/itcontroller/internal/client/session"
)

// newAPI starts a fake server and returns a gateway to it plus a context
// logged in as "ana".
func newAPI(t *testing.T) (*apitest.Server, *gateway.Gateway, context.Context) {
	t.Helper()
	srv := apitest.New(t)
	srv.AddUser("ana", "secret")
	ctx := session.WithCredentials(context.Background(), session.Credentials{
		Token:    srv.Token("ana"),
		Username: "ana",
	})
	return srv, gateway.New(srv.BaseURL()), ctx
}

func ptr[T any](v T) *T { return &v }
