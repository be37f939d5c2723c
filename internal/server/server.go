// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: main.go hands it a Config, and New wires
// the whole dependency chain in one place —
//
//	sqlite.DB → AuthService (+ TokenService, PasswordService, GoogleVerifier)
//	          → AuthHandler → routes
//
// Handlers never touch the database, services never touch HTTP, and nothing
// reads the environment past main.go.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/blog-backend/internal/auth"
	"github.com/sakif/blog-backend/internal/handler"
	"github.com/sakif/blog-backend/internal/middleware"
	sqliteRepo "github.com/sakif/blog-backend/internal/repository/sqlite"
	"github.com/sakif/blog-backend/internal/service"
)

// Config holds everything the server needs from the environment. It is
// constructed once in main and passed in — no package-level state.
type Config struct {
	Port              int
	DBPath            string
	JWTSecret         string // signs session tokens; required
	GoogleUserInfoURL string // optional override of Google's userinfo endpoint
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown in Start.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with the given config and wires all dependencies.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
//	POST /signup      → local account creation
//	POST /signin      → local password login
//	POST /google-auth → Google token login/registration
//	GET  /api/me      → current user (requires a session token)
func (s *Server) setupRoutes() error {
	// Middleware order: RequestID and RealIP enrich the request, Recoverer
	// turns panics into 500s, then our logger records the outcome.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	passwords := auth.NewPasswordService()
	verifier := auth.NewGoogleVerifier(s.config.GoogleUserInfoURL)

	authService := service.NewAuthService(s.db, tokens, passwords, verifier, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	s.router.Post("/signup", authHandler.HandleSignup)
	s.router.Post("/signin", authHandler.HandleSignin)
	s.router.Post("/google-auth", authHandler.HandleGoogleAuth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/me", authHandler.HandleMe)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30s budget) and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
