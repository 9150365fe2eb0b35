// Command server starts the Hotel Management auth API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/adijith/HotelManagement/internal/config"
	"github.com/adijith/HotelManagement/internal/crypto"
	"github.com/adijith/HotelManagement/internal/limiter"
	"github.com/adijith/HotelManagement/internal/migrate"
	"github.com/adijith/HotelManagement/internal/repository/postgres"
	"github.com/adijith/HotelManagement/internal/server/httpapi"
	"github.com/adijith/HotelManagement/internal/service"
	"github.com/adijith/HotelManagement/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the HTTP API until a
// shutdown signal arrives.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	accounts := postgres.NewAccountRepo(db)
	lim := limiter.NewPGWithQuerier(db.Pool, cfg.LoginWindow, cfg.LoginMaxFails, cfg.LoginBlockFor)

	tokens := token.NewManager([]byte(cfg.JWTKey))
	authSvc := service.NewAuthService(accounts, crypto.NewHasher(cfg.PasswordScheme), tokens, lim)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(authSvc, tokens, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
