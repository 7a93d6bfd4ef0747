// Command server starts the shopping-list HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/antonsk/shoplist/internal/config"
	"github.com/antonsk/shoplist/internal/limiter"
	"github.com/antonsk/shoplist/internal/migrate"
	"github.com/antonsk/shoplist/internal/repository/postgres"
	"github.com/antonsk/shoplist/internal/server/web"
	"github.com/antonsk/shoplist/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the HTTP API until
// interrupted.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("port", cfg.Port),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DSN()); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	listRepo := postgres.NewListRepo(db)

	lim := limiter.NewPGWithQuerier(db.Pool, cfg.LockoutWindow, cfg.LockoutMaxFails, cfg.LockoutBlockFor)

	// Services
	userSvc := service.NewUserService(userRepo, lim, cfg.LoginFailureDelay, logger)
	sessionSvc := service.NewSessionService(sessionRepo, logger)
	listSvc := service.NewListService(listRepo, logger)
	shareSvc := service.NewShareService([]byte(cfg.ShareSigningKey), cfg.ShareTokenTTL)

	router := web.NewRouter(userSvc, sessionSvc, listSvc, shareSvc, logger, web.RouterConfig{
		SecureCookies: cfg.IsProduction(),
		AuthRateRPS:   cfg.AuthRateRPS,
		AuthRateBurst: cfg.AuthRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
