package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/Sid16p/Task-7---Fetch-API/internal/app/config"
	"github.com/Sid16p/Task-7---Fetch-API/internal/live"
	mw "github.com/Sid16p/Task-7---Fetch-API/internal/middleware"
	"github.com/Sid16p/Task-7---Fetch-API/internal/panel"
	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
	"github.com/Sid16p/Task-7---Fetch-API/internal/view"
)

const (
	ReloadPath = "/api/reload"
	LivePath   = "/__live"
)

type Server struct {
	config  *config.Config
	panel   *panel.DataPanel
	doc     *view.Document
	hub     *live.Hub
	limiter *mw.RateLimiter
	mux     *chi.Mux
	version string
}

// New builds the panel, its HTML document and the live hub from cfg. The
// fetcher is the upstream user source, normally a *users.Client.
func New(cfg *config.Config, fetcher users.Fetcher, version string) *Server {
	hub := live.NewHub()
	doc := view.NewDocument(view.DocumentOptions{
		Title:      cfg.Panel.Title,
		ReloadPath: ReloadPath,
		Stagger:    cfg.Stagger(),
		Publisher:  hub,
	})

	s := &Server{
		config:  cfg,
		panel:   panel.New(fetcher, doc, slog.Default()),
		doc:     doc,
		hub:     hub,
		limiter: mw.NewRateLimiter(cfg.Reload.Limit, cfg.ReloadWindow()),
		mux:     chi.NewRouter(),
		version: version,
	}

	s.SetupMiddlewares()
	s.SetupRoutes()

	return s
}

func (s *Server) SetupMiddlewares() {
	s.mux.Use(middleware.RequestID)
	s.mux.Use(middleware.RealIP)
	s.mux.Use(middleware.Logger)
	s.mux.Use(middleware.Recoverer)
	s.mux.Use(mw.Headers(mw.DefaultSecurityHeaders))
}

func (s *Server) SetupRoutes() {
	s.mux.Get("/", s.handlePage)
	s.mux.Get("/panel", s.handlePanel)
	s.mux.Get(LivePath, s.hub.Handler())

	s.mux.With(s.limiter.Handler).Post(ReloadPath, s.handleReload)
	s.mux.Get("/api/users", s.handleUsers)

	s.mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": s.version,
			"loading": s.panel.Loading(),
			"clients": s.hub.Count(),
		})
	})

	publicDir := s.config.Routing.PublicDir
	if info, err := os.Stat(publicDir); err == nil && info.IsDir() {
		s.mux.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir))))
	}

	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := view.Page(view.PageProps{
		Title:   s.doc.Title(),
		Panel:   s.doc.Node(),
		Head:    s.stylesheets(),
		Scripts: []g.Node{g.Raw(live.ClientScript(LivePath))},
	})
	s.render(w, r, page)
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, view.Fragment(s.doc.Node()))
}

// handleReload runs a fetch cycle and answers with the resulting panel. The
// cycle is detached from the request so a disconnecting client cannot abort
// it. A trigger that lands while a cycle is running gets the busy panel
// back; the final state reaches it over the live socket.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !s.panel.FetchAll(context.WithoutCancel(r.Context())) {
		w.Header().Set("X-Fetch-Ignored", "true")
	}
	s.render(w, r, view.Fragment(s.doc.Node()))
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	state := s.panel.State()
	if state.Records == nil {
		state.Records = []users.UserRecord{}
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("Failed to render", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) stylesheets() []g.Node {
	path := filepath.Join(s.config.Routing.PublicDir, "app.css")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return []g.Node{h.Link(h.Rel("stylesheet"), h.Href("/public/app.css"))}
}

// Refresh starts a fetch cycle in the background, as the page does on
// first load.
func (s *Server) Refresh(ctx context.Context) {
	go s.panel.FetchAll(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Panel() *panel.DataPanel {
	return s.panel
}

func (s *Server) Hub() *live.Hub {
	return s.hub
}

// HTTPServer wraps the handler with the timeouts used in every mode. There
// is no WriteTimeout: a reload response waits on the upstream, which has no
// deadline of its own.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:        s.config.Addr(),
		Handler:     s.mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

func (s *Server) Start() {
	s.limiter.StartCleanup(5 * time.Minute)
}

func (s *Server) Close() {
	s.limiter.Close()
	s.hub.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
