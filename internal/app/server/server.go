package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"francoggm/wiinpay-pix-relay/internal/app/server/handlers"
	"francoggm/wiinpay-pix-relay/internal/app/server/middleware"
	"francoggm/wiinpay-pix-relay/internal/config"
	"francoggm/wiinpay-pix-relay/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Server struct {
	cfg      *config.Config
	router   *chi.Mux
	handlers *handlers.Handlers
	metrics  *metrics.Metrics
	logger   *zap.Logger
	http     *http.Server
}

func NewServer(cfg *config.Config, h *handlers.Handlers, m *metrics.Metrics, logger *zap.Logger) *Server {
	srv := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		handlers: h,
		metrics:  m,
		logger:   logger,
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	srv.http = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

func (s *Server) registerMiddlewares() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.AccessLog(s.logger, s.metrics))
	s.router.Use(middleware.Recoverer(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handlers.Health)
	s.router.Handle("/metrics", s.metrics.Handler())

	s.router.Route("/api/wiinpay", func(r chi.Router) {
		r.Post("/pix/create", s.handlers.CreatePix)
		r.Post("/webhook", s.handlers.Webhook)
	})

	s.router.Get("/*", spaHandler(s.cfg.Static.Dir))
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	s.logger.Info("server_started", zap.String("port", s.cfg.Server.Port))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
