package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/ploofyz/ploofyz-web/internal/analytics"
	"github.com/ploofyz/ploofyz-web/internal/live"
	"github.com/ploofyz/ploofyz-web/internal/metrics"
	"github.com/ploofyz/ploofyz-web/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port        int
	AllowAll    bool    // allow all CORS origins (dev mode)
	SearchRate  float64 // search requests per second, 0 disables limiting
	SearchBurst int
}

// Deps are the feature handlers mounted on the router. Analytics and
// Metrics may be nil.
type Deps struct {
	Site      *site.Handler
	Hub       *live.Hub
	Analytics *analytics.Store
	Metrics   *metrics.Metrics
}

// Server is the site's HTTP server.
type Server struct {
	cfg        Config
	deps       Deps
	limiter    *rate.Limiter
	router     chi.Router
	httpServer *http.Server
}

// New creates a new server with all dependencies.
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:  cfg,
		deps: deps,
	}
	if cfg.SearchRate > 0 {
		burst := cfg.SearchBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.SearchRate), burst)
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
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

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.deps.Metrics != nil {
		r.Handle("/metrics", s.deps.Metrics.Handler())
	}

	// Websocket sessions live as long as the tab, so they stay outside the timeout.
	if s.deps.Hub != nil {
		live.RegisterRoutes(r, s.deps.Hub)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(s.limitSearch)

		if s.deps.Analytics != nil {
			analytics.RegisterRoutes(r, s.deps.Analytics)
		}
		if s.deps.Site != nil {
			site.RegisterRoutes(r, s.deps.Site)
		}
	})

	return r
}

// limitSearch applies the token bucket to /api/search only.
func (s *Server) limitSearch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && r.URL.Path == "/api/search" && !s.limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"too many search requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("ploofyz server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes live sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.deps.Hub != nil {
		s.deps.Hub.CloseAll()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
