package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/itcontroller/internal/buildinfo"
	"github.com/dmitrijs2005/itcontroller/internal/client/cli"
	"github.com/dmitrijs2005/itcontroller/internal/client/config"
	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
	"github.com/dmitrijs2005/itcontroller/internal/client/localdb"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
	"github.com/dmitrijs2005/itcontroller/internal/client/session"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer db.Close()

	// the 401 hook needs the app, which needs the gateway
	var app *cli.App
	gw := gateway.New(cfg.APIBaseURL,
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithLogger(logger),
		gateway.WithUnauthorizedHandler(func(ctx context.Context) {
			app.SessionExpired(ctx)
		}),
	)

	app = cli.NewApp(cli.Services{
		Auth:      services.NewAuthService(gw, session.NewManager(db), logger),
		Board:     services.NewBoardService(gw, logger),
		Notes:     services.NewNotesService(gw, logger),
		Vault:     services.NewVaultService(gw, nil, logger),
		Feed:      services.NewFeedService(gw, logger),
		Inventory: services.NewInventoryService(gw, logger),
	}, logger)

	app.Run(ctx)

}
