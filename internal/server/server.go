package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/db"
	"github.com/jyliuu/folio/internal/prefs"
	"github.com/jyliuu/folio/internal/profile"
	"github.com/jyliuu/folio/internal/render"
	"github.com/jyliuu/folio/internal/router"
	"github.com/jyliuu/folio/internal/search"
	"github.com/jyliuu/folio/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port        int
	SiteTitle   string
	ProfileFile string // reloaded on every Reload; empty keeps the built-in profile
	StaticDir   string // served at / and /static/
	LiveReload  bool   // inject the websocket reload client into pages
	AllowAll    bool   // allow all CORS origins (dev mode)
}

// Server serves the portfolio live, rendering each page on request.
type Server struct {
	cfg      Config
	db       *db.DB
	source   site.PostSource
	renderer *render.Renderer
	index    *search.Index
	prefs    *prefs.Store
	hub      *Hub
	logger   *zap.Logger

	mu     sync.RWMutex
	posts  []content.Post
	views  *site.Views
	loaded time.Time

	router     chi.Router
	httpServer *http.Server
}

// New creates a server with the built-in profile and no notes. Call Reload
// before serving to load the configured content.
func New(cfg Config, database *db.DB, source site.PostSource, r *render.Renderer, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		db:       database,
		source:   source,
		renderer: r,
		index:    search.NewIndex(database),
		prefs:    prefs.NewStore(database),
		hub:      NewHub(logger),
		logger:   logger,
	}

	views, err := s.newViews(profile.Default())
	if err != nil {
		return nil, err
	}
	s.views = views

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) newViews(prof *profile.Profile) (*site.Views, error) {
	return site.NewViews(router.PathStrategy{}, prof, s.renderer, site.ViewOptions{
		SiteTitle:    s.cfg.SiteTitle,
		ServerToggle: true,
		LiveReload:   s.cfg.LiveReload,
	})
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The reload socket is long-lived and stays outside the request timeout.
	r.Get("/ws/reload", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/", s.handleHome)
		r.Get("/notes", s.handleNotes)
		r.Get("/notes/", s.handleNotes)
		r.Get("/notes/{id}", s.handleNote)
		r.Get("/notes/{id}/", s.handleNote)
		r.Post("/theme/toggle", s.handleThemeToggle)

		r.Get("/api/posts", s.handleAPIPosts)
		r.Get("/api/posts/{id}", s.handleAPIPost)
		search.RegisterRoutes(r, s.index)

		r.Get("/style.css", s.handleAsset)
		r.Get("/script.js", s.handleAsset)
		r.Get("/highlight.css", s.handleHighlightCSS)
		if s.cfg.StaticDir != "" {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
		}

		r.NotFound(s.handleFallback)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Hub returns the live reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Reload reloads the notes and profile, re-indexes search and tells
// connected browsers to refresh. On error the previous snapshot stays.
func (s *Server) Reload(ctx context.Context) error {
	posts, err := s.source.All(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	prof := profile.Default()
	if s.cfg.ProfileFile != "" {
		if prof, err = profile.Load(s.cfg.ProfileFile); err != nil {
			return err
		}
	}

	views, err := s.newViews(prof)
	if err != nil {
		return err
	}

	if err := s.index.Replace(ctx, posts); err != nil {
		return fmt.Errorf("indexing notes: %w", err)
	}

	s.mu.Lock()
	s.posts = posts
	s.views = views
	s.loaded = time.Now()
	s.mu.Unlock()

	n := s.hub.Broadcast(ReloadMessage)
	s.logger.Info("content loaded", zap.Int("posts", len(posts)), zap.Int("clients_notified", n))
	return nil
}

// Loaded returns when content was last loaded successfully.
func (s *Server) Loaded() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Server) now() time.Time { return time.Now() }

// snapshot returns the current notes and views. The slice must not be modified.
func (s *Server) snapshot() ([]content.Post, *site.Views) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts, s.views
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	s.logger.Info("folio server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes reload sockets.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
