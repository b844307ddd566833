package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sid16p/Task-7---Fetch-API/internal/app/config"
	"github.com/Sid16p/Task-7---Fetch-API/internal/app/server"
	"github.com/Sid16p/Task-7---Fetch-API/internal/logging"
	"github.com/Sid16p/Task-7---Fetch-API/internal/telemetry"
	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up telemetry: %v\n", err)
		os.Exit(1)
	}

	app := server.New(cfg, users.NewClient(cfg.Source.URL), version)
	app.Start()
	srv := app.HTTPServer()

	go func() {
		slog.Info("Starting userpanel server",
			"addr", cfg.Addr(),
			"version", version,
			"commit", commit,
			"built", date,
			"source", cfg.Source.URL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	app.Refresh(context.WithoutCancel(ctx))

	<-ctx.Done()

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	app.Close()

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Warn("Tracing shutdown failed", "error", err)
	}

	slog.Info("Server exited")
}
