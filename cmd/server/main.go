// Package main runs the match API as a local HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pricofy/football-api/internal/app"
	"github.com/pricofy/football-api/internal/config"
	"github.com/pricofy/football-api/internal/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	a, err := app.New(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize application", zap.Error(err))
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      a.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     zap.NewStdLog(zl),
	}

	serverErrors := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zl.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			zl.Error("graceful shutdown failed", zap.Error(err))
			if closeErr := server.Close(); closeErr != nil {
				zl.Error("failed to force close server", zap.Error(closeErr))
			}
			return
		}
		zl.Info("server shutdown complete")
	}
}
