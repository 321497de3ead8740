// Package server provides HTTP server management and lifecycle handling for
// the pharmacy API: middleware configuration, route setup, and graceful
// shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openrx/pharmacy-api/config"
	"github.com/openrx/pharmacy-api/handlers"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router chi.Router
	deps   *handlers.Deps
	config *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, deps *handlers.Deps) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		deps:   deps,
		config: cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()
	globalRateLimiter.StartCleanup()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.RequestLogger(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Catalog browsing
	s.router.Get("/catalog", handlers.ServeAllMedicines(s.deps.Catalog))
	s.router.Get("/catalog/{pageNumber}", handlers.ServePagedMedicines(s.deps.Catalog))
	s.router.Get("/medicine/{element}", handlers.FindMedicine(s.deps.Catalog))
	s.router.Get("/medicine/id/{id}", handlers.FindMedicineByID(s.deps.Catalog))
	s.router.Get("/categories", handlers.ServeCategories(s.deps.Catalog))

	// Session cart
	s.router.Get("/cart", handlers.GetCart(s.deps))
	s.router.Post("/cart/items/{id}", handlers.AddCartItem(s.deps))
	s.router.Put("/cart/items/{id}", handlers.UpdateCartItem(s.deps))
	s.router.Delete("/cart/items/{id}", handlers.RemoveCartItem(s.deps))

	// Prescription pipeline and checkout
	s.router.Post("/prescriptions", handlers.UploadPrescription(s.deps))
	s.router.Post("/checkout", handlers.Checkout(s.deps))

	// Operational endpoints
	s.router.Get("/health", handlers.HealthCheck(s.deps))
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	globalRateLimiter.StopCleanup()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// Router exposes the underlying router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}
