// Package server wires configuration, storage, integrations and transports
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/guardianeye/guardianeye/internal/logging"
	"github.com/guardianeye/guardianeye/internal/server/auth"
	"github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/guardianeye/guardianeye/internal/server/feeds"
	"github.com/guardianeye/guardianeye/internal/server/httpapi"
	"github.com/guardianeye/guardianeye/internal/server/metrics"
	"github.com/guardianeye/guardianeye/internal/server/notify"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
	"github.com/guardianeye/guardianeye/internal/server/services"

	gs "github.com/guardianeye/guardianeye/internal/server/grpc"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	config     *config.Config
	logger     *logging.ZapLogger
	db         *sql.DB
	httpServer *http.Server
	grpcServer *gs.GRPCServer
	users      *services.UserService
	closers    []func() error
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.NewZapLogger(c.Environment, c.LogLevel, "guardianeye-server")
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	m, err := app.initStorage(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	denylist, err := app.initDenylist(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	notifier, err := app.initNotifier()
	if err != nil {
		app.close()
		return nil, err
	}

	mtr := metrics.New()
	aggregator := feeds.NewAggregator(
		feeds.NewClient(c.WindyBaseURL, c.WindyAPIKey, c.UpstreamTimeout),
		c.FeedCategory, c.FeedPageSize, mtr, logger,
	)

	app.users = services.NewUserService(app.db, m, c, denylist, notifier, logger)
	api := httpapi.New(c, httpapi.Services{
		Users:      app.users,
		Cameras:    services.NewCameraService(app.db, m),
		Recordings: services.NewRecordingService(app.db, m, c),
		Alerts:     services.NewAlertService(app.db, m),
		Feeds:      aggregator,
	}, mtr, logger)

	app.httpServer = &http.Server{
		Addr:              c.EndpointAddrHTTP,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger)

	return app, nil
}

func (app *App) initStorage(ctx context.Context) (repomanager.RepositoryManager, error) {
	switch app.config.StorageBackend {
	case config.StorageMemory:
		app.logger.Warn(ctx, "using in-memory storage, data is lost on restart")
		return repomanager.NewMemoryRepositoryManager(), nil

	case config.StoragePostgres:
		db, err := sql.Open("pgx", app.config.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		app.closers = append(app.closers, db.Close)

		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("db ping error: %w", err)
		}

		m := repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", app.config.StorageBackend)
	}
}

func (app *App) initDenylist(ctx context.Context) (auth.Denylist, error) {
	if app.config.DenylistBackend != config.DenylistRedis {
		return auth.NewMemoryDenylist(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})
	app.closers = append(app.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping error: %w", err)
	}
	return auth.NewRedisDenylist(client), nil
}

func (app *App) initNotifier() (notify.Notifier, error) {
	if app.config.NotifierBackend != config.NotifierAMQP {
		return notify.NewLogNotifier(app.logger), nil
	}

	n, closeFn, err := notify.DialAMQP(app.config.AMQPURL, app.config.AMQPExchange, app.config.AMQPRoutingKey)
	if err != nil {
		return nil, fmt.Errorf("amqp init error: %w", err)
	}
	app.closers = append(app.closers, closeFn)
	return n, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	go func() {
		<-ctx.Done()
		app.grpcServer.SetNotServing()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.httpServer.Addr)

	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment, "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	// pending reset e-mails still need the notifier
	app.users.Drain()
	app.close()
	app.logger.Info(context.Background(), "App stopped")
	_ = app.logger.Sync()
}

// close releases resources in reverse order of acquisition.
func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Warn(context.Background(), "close error", "error", err)
		}
	}
	app.closers = nil
}
