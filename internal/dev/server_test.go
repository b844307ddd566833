package dev

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid16p/Task-7---Fetch-API/internal/app/config"
)

func TestDevServer_InitialFetchSurvivesCancel(t *testing.T) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	gate := make(chan struct{})
	entered := make(chan struct{}, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-gate
		io.WriteString(w, `[{"id":1,"name":"Leanne Graham","username":"Bret"}]`)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Source:  config.SourceConfig{URL: upstream.URL},
		Panel:   config.PanelConfig{Title: "User Directory", StaggerMS: 100},
		Routing: config.RoutingConfig{PublicDir: t.TempDir()},
		Reload:  config.ReloadConfig{WindowSeconds: 60},
	}
	d := NewDevServer(cfg, "test")
	t.Cleanup(d.app.Close)

	ctx, cancel := context.WithCancel(context.Background())
	d.initialFetch(ctx)

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("initial fetch did not reach upstream")
	}

	cancel()
	close(gate)

	require.Eventually(t, func() bool { return !d.app.Panel().Loading() }, 2*time.Second, 10*time.Millisecond)

	state := d.app.Panel().State()
	assert.Empty(t, state.LastError)
	assert.Len(t, state.Records, 1)
}
