// Package server initializes and runs the game backend. It opens the store,
// applies migrations, wires the services and runs the HTTP API, the gRPC
// health endpoint, the presence sweeper and the optional save archive until
// the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gamekeeper/internal/server/backup"
	"github.com/dmitrijs2005/gamekeeper/internal/server/config"
	"github.com/dmitrijs2005/gamekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gamekeeper/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/gamekeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	issuer   *auth.Issuer
	accounts *services.AccountService
	saves    *services.SaveService
	presence *services.PresenceService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var rdb *redis.Client
	if c.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: c.RedisAddr, Password: c.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			_ = db.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		rm = repomanager.WithRedisPresence(rm, rdb, "")
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	hasher := cryptox.NewHasher(c.BcryptCost)

	ps := services.NewPresenceService(db, rm, c.PresenceWindow, logger)
	as := services.NewAccountService(db, rm, issuer, hasher, ps, logger)
	ss := services.NewSaveService(db, rm, logger)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		redis:    rdb,
		issuer:   issuer,
		accounts: as,
		saves:    ss,
		presence: ps,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	opts := httpapi.Options{
		AllowedOrigins:    app.config.AllowedOrigins,
		RateLimitRequests: app.config.RateLimitRequests,
		RateLimitWindow:   app.config.RateLimitWindow,
		BodyLimitBytes:    app.config.BodyLimitBytes,
		TrustedProxies:    app.config.TrustedProxies,
	}
	router := httpapi.NewRouter(app.logger, opts, app.issuer, app.accounts, app.saves, app.presence, app.db)

	s := httpapi.NewHTTPServer(app.config.HTTPAddr, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.db, 0)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBackup(ctx context.Context) {
	e, err := backup.NewExporter(ctx, backup.Config{
		Bucket:    app.config.S3Bucket,
		Region:    app.config.S3Region,
		Endpoint:  app.config.S3BaseEndpoint,
		AccessKey: app.config.S3RootUser,
		SecretKey: app.config.S3RootPassword,
	}, app.saves, app.logger)
	if err != nil {
		app.logger.Error(ctx, "save archive disabled", "error", err)
		return
	}

	e.Run(ctx, app.config.BackupInterval)
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.presence.RunSweeper(ctx, app.config.SweepInterval)
	}()

	if app.config.S3Bucket != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startBackup(ctx)
		}()
	}

	wg.Wait()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
