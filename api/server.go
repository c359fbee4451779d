// Package api serves the Equibull site: server-rendered pages, the JSON
// endpoints behind them, and a WebSocket that announces news refreshes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/analysis"
	"github.com/seenimoa/equibull/internal/config"
	"github.com/seenimoa/equibull/internal/datasource"
	"github.com/seenimoa/equibull/internal/newsletter"
	"github.com/seenimoa/equibull/web"
)

// Deps are the services the server delegates to.
type Deps struct {
	News       datasource.NewsProvider
	Newsletter *newsletter.Service
	Analyzer   *analysis.Analyzer
	Logger     *zap.Logger
	Version    string
}

// Server is the HTTP server.
type Server struct {
	router     chi.Router
	cfg        *config.Config
	log        *zap.Logger
	news       datasource.NewsProvider
	newsletter *newsletter.Service
	analyzer   *analysis.Analyzer
	pages      *web.Renderer
	wsHub      *WSHub
	version    string
	now        func() time.Time
}

// NewServer creates a configured server with all routes and middleware.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.News == nil || deps.Newsletter == nil || deps.Analyzer == nil {
		return nil, errors.New("api: news, newsletter and analyzer are required")
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	pages, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	srv := &Server{
		cfg:        cfg,
		log:        log.Named("api"),
		news:       deps.News,
		newsletter: deps.Newsletter,
		analyzer:   deps.Analyzer,
		pages:      pages,
		version:    deps.Version,
		now:        time.Now,
	}
	if srv.version == "" {
		srv.version = "dev"
	}
	srv.wsHub = NewWSHub(srv.log)
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go s.wsHub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()
	s.log.Info("listening", zap.String("addr", ln.Addr().String()), zap.String("news_provider", s.news.Name()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// Static assets
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	// WebSocket stays outside the timeout group; it is long-lived.
	r.Get("/ws/news", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Pages
		r.Get("/", s.handleHome)
		r.Get("/about", s.handleAbout)
		r.Get("/news", s.handleNews)
		r.Get("/analysis", s.handleAnalysis)
		r.Get("/analysis/{symbol}", s.handleAnalysis)
		r.Post("/subscribe", s.handleSubscribe)

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/health", s.handleHealth)
			r.Get("/news", s.handleNewsAPI)
			r.Post("/subscribe", s.handleSubscribeAPI)
			r.Get("/analysis/{symbol}", s.handleAnalysisAPI)
			r.Get("/config", s.handleGetConfig)
		})
	})

	return r
}

func staticHandler() http.Handler {
	files := http.FileServerFS(web.StaticFS())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

// requestLogger writes one access log line per request.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
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

// ============================================================
// Response helpers
// ============================================================

// APIResponse is the standard JSON response envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"success":false,"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
