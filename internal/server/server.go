// Package server assembles the HTTP server: database, auth services,
// repositories, services, handlers, routes, and lifecycle management.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/config"
	"github.com/inotebook/backend/internal/constants"
	"github.com/inotebook/backend/internal/database"
	"github.com/inotebook/backend/internal/handlers"
	"github.com/inotebook/backend/internal/repository"
	"github.com/inotebook/backend/internal/service"
	"github.com/inotebook/backend/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	AuthHandler  *handlers.AuthHandler
	NoteHandler  *handlers.NoteHandler
	AdminHandler *handlers.AdminHandler
}

// sessionPair bundles the token service and cookie transport of one
// credential namespace.
type sessionPair struct {
	tokens  *auth.TokenService
	cookies *auth.CookieManager
}

// Server represents the API server. It owns the component lifecycle:
// initialization follows database, auth, repositories, services,
// handlers, routes, in that order.
type Server struct {
	Config   *config.AppConfig
	Db       *database.Pool
	Handlers *Handlers

	router       chi.Router
	userSession  sessionPair
	adminSession sessionPair
	hasher       *auth.PasswordHasher

	repos struct {
		users     repository.UserRepository
		notes     repository.NoteRepository
		admins    repository.AdminRepository
		dashboard repository.DashboardRepository
	}

	services struct {
		accounts  *service.AccountService
		notes     *service.NoteService
		admins    *service.AdminService
		dashboard *service.DashboardService
		mailer    service.Mailer
	}

	httpServer *http.Server
}

// NewServer creates a fully initialized server instance.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	s.setupAuth()
	s.setupRepositories()
	s.setupServices()
	s.setupHandlers()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to PostgreSQL and runs the schema migrations.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// setupAuth creates the password hasher and one token/cookie pair per
// credential namespace. The namespaces use distinct signing secrets,
// audiences, and cookie names.
func (s *Server) setupAuth() {
	secure := !s.Config.App.IsDevelopment()
	expiry := s.Config.Auth.SessionExpiry

	s.userSession = sessionPair{
		tokens: auth.NewTokenService(
			s.Config.Auth.UserSecret,
			constants.SessionIssuer,
			constants.UserTokenAudience,
			expiry,
		),
		cookies: auth.NewCookieManager(constants.UserSessionCookie, expiry, secure),
	}

	s.adminSession = sessionPair{
		tokens: auth.NewTokenService(
			s.Config.Auth.AdminSecret,
			constants.SessionIssuer,
			constants.AdminTokenAudience,
			expiry,
		),
		cookies: auth.NewCookieManager(constants.AdminSessionCookie, expiry, secure),
	}

	s.hasher = auth.NewPasswordHasher(s.Config.PasswordHash.Cost)
}

// setupRepositories initializes all data repositories.
func (s *Server) setupRepositories() {
	s.repos.users = repository.NewUserRepository(s.Db)
	s.repos.notes = repository.NewNoteRepository(s.Db)
	s.repos.admins = repository.NewAdminRepository(s.Db)
	s.repos.dashboard = repository.NewDashboardRepository(s.Db)
}

// setupServices initializes all business services.
func (s *Server) setupServices() {
	s.services.mailer = service.NewEmailService(&s.Config.SMTP)

	s.services.accounts = service.NewAccountService(
		s.repos.users,
		s.repos.notes,
		s.userSession.tokens,
		s.hasher,
		s.services.mailer,
		s.Config.App.ClientURL,
		s.Config.Auth.ResetTokenTTL,
	)

	s.services.notes = service.NewNoteService(s.repos.notes)

	s.services.admins = service.NewAdminService(
		s.repos.admins,
		s.adminSession.tokens,
		s.hasher,
	)

	s.services.dashboard = service.NewDashboardService(s.repos.dashboard)
}

// setupHandlers initializes all HTTP handlers.
func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		AuthHandler:  handlers.NewAuthHandler(s.services.accounts, s.userSession.cookies),
		NoteHandler:  handlers.NewNoteHandler(s.services.notes),
		AdminHandler: handlers.NewAdminHandler(s.services.admins, s.services.dashboard, s.adminSession.cookies),
	}
}

// Start runs the HTTP server and blocks until a shutdown signal
// arrives, then drains connections within the configured timeout.
func (s *Server) Start() error {
	errCh := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.httpServer.Addr).
			Str("environment", s.Config.App.Environment).
			Msg("Starting HTTP server")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server")
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the database pool.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	s.Db.Close()

	log.Info().Msg("Server stopped")
	return nil
}
