// Package app assembles the process: configuration, logging, data layer,
// services, and the HTTP server, with ordered cleanup on shutdown.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projectflow/projectflow/internal/config"
	"github.com/projectflow/projectflow/internal/data"
	"github.com/projectflow/projectflow/internal/handler"
	"github.com/projectflow/projectflow/internal/middleware"
	"github.com/projectflow/projectflow/internal/service"
	"github.com/projectflow/projectflow/pkg/jwt"
	"github.com/projectflow/projectflow/pkg/logger"
	"github.com/projectflow/projectflow/pkg/resp"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled application.
type App struct {
	cfg    *config.Config
	logger *logger.Logger
	server *http.Server
}

// New builds the application. The returned cleanup releases resources in
// reverse construction order and is safe to call after a failed Run.
func New(cfg *config.Config) (*App, func(), error) {
	flushLogs, err := logger.New(&logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, nil, err
	}
	log := logger.StdLogger()

	if cfg.InsecureJWTSecret() && cfg.Environment != "development" {
		log.Warn(context.Background(), "JWT_SECRET is the insecure default; set a strong signing key",
			"env", cfg.Environment)
	}

	resp.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	d, err := data.New(cfg.MongoURI, log)
	if err != nil {
		flushLogs()
		return nil, nil, err
	}

	tokens := jwt.NewTokenManager(cfg.JWTSecret, jwt.DefaultAccessTokenExpire)
	svc := service.New(d, tokens, log)

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.Trace(), middleware.RequestLogger(log))
	handler.New(svc, log).RegisterRoutes(engine)

	app := &App{
		cfg:    cfg,
		logger: log,
		server: &http.Server{Addr: cfg.Addr(), Handler: engine},
	}

	cleanup := func() {
		if err := d.Close(); err != nil {
			log.Warn(context.Background(), "failed to close data layer", "error", err)
		}
		flushLogs()
	}
	return app, cleanup, nil
}

// Run starts the HTTP server and blocks until shutdown. SIGINT and SIGTERM
// trigger a graceful drain.
func (a *App) Run() error {
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "server listening", "addr", a.server.Addr, "env", a.cfg.Environment)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info(ctx, "shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	a.logger.Info(ctx, "server stopped")
	return nil
}
