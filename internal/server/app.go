// Package server initializes and runs the metadata server: it wires
// configuration, storage, services, and the HTTP endpoint, and handles
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/metastore/internal/logging"
	"github.com/dmitrijs2005/metastore/internal/server/config"
	"github.com/dmitrijs2005/metastore/internal/server/db"
	"github.com/dmitrijs2005/metastore/internal/server/services"

	hs "github.com/dmitrijs2005/metastore/internal/server/http"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	manager         *db.PostgresRepositoryManager
	metadataService *services.MetadataService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	archiver := services.NewArchiver(c)
	ms := services.NewMetadataService(m.Metadata(), archiver, logger)

	return &App{config: c, logger: logger, manager: m, metadataService: ms}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := hs.NewHTTPServer(app.config.EndpointAddr, app.logger, app.metadataService, app.config.SecretKey, app.config.TokenMaxAge)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
