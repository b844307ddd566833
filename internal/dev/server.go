package dev

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
	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

// DevServer is the regular server plus a file watcher that tells open
// browsers to reload when static assets or the config file change.
type DevServer struct {
	config  *config.Config
	app     *server.Server
	watcher *Watcher
	server  *http.Server
}

func NewDevServer(cfg *config.Config, version string) *DevServer {
	return &DevServer{
		config: cfg,
		app:    server.New(cfg, users.NewClient(cfg.Source.URL), version),
	}
}

func (d *DevServer) watchPaths() []string {
	paths := []string{d.config.Routing.PublicDir}
	if d.config.File != "" {
		paths = append(paths, d.config.File)
	}
	return paths
}

func (d *DevServer) Start(ctx context.Context) error {
	w, err := NewWatcher(d.watchPaths(), d.handleFileChange)
	if err != nil {
		slog.Warn("File watcher unavailable", "error", err)
	} else {
		d.watcher = w
		if err := d.watcher.Start(ctx); err != nil {
			slog.Warn("File watcher failed", "error", err)
		}
	}

	d.app.Start()
	d.server = d.app.HTTPServer()

	slog.Info("Starting dev server",
		"addr", d.config.Addr(),
		"source", d.config.Source.URL,
		"watching", d.watchPaths(),
	)

	go func() {
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}()

	d.initialFetch(ctx)

	return nil
}

// initialFetch starts the first cycle. Stopping the dev server does not
// abort it.
func (d *DevServer) initialFetch(ctx context.Context) {
	d.app.Refresh(context.WithoutCancel(ctx))
}

func (d *DevServer) handleFileChange(path string) {
	if path == d.config.File {
		slog.Info("Config file changed, restart to apply source or port changes", "file", path)
	}
	d.app.Hub().Reload(path)
}

func (d *DevServer) Shutdown(ctx context.Context) error {
	if d.watcher != nil {
		d.watcher.Close()
	}
	d.app.Close()
	if d.server != nil {
		return d.server.Shutdown(ctx)
	}
	return nil
}

func RunDev(cfg *config.Config, version string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dev := NewDevServer(cfg, version)

	if err := dev.Start(ctx); err != nil {
		return fmt.Errorf("start dev server: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down dev server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return dev.Shutdown(shutdownCtx)
}
