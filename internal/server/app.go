// Package server initializes and runs the application: it opens the
// database, applies migrations, wires services to the credential authority
// and the mailer, and starts the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/auth"
	"github.com/dmitrijs2005/seabattle/internal/server/config"
	"github.com/dmitrijs2005/seabattle/internal/server/httpapi"
	"github.com/dmitrijs2005/seabattle/internal/server/mailer"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/seabattle/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	authority := auth.NewAuthority([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	gate := auth.NewGate(authority)

	var mail mailer.Mailer
	if cfg.SMTPUsername != "" {
		mail, err = mailer.NewSMTPMailer(cfg)
		if err != nil {
			return nil, fmt.Errorf("mailer init error: %w", err)
		}
	} else {
		mail = mailer.NewNoopMailer(logger)
	}

	us := services.NewUserService(db, rm, authority, mail, logger)
	gs := services.NewGameService(db, rm, logger)
	ds := services.NewDirectoryService(db, rm, logger)

	srv := httpapi.NewServer(cfg.EndpointAddr, gate, us, gs, ds, logger)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
