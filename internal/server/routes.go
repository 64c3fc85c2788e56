package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/inotebook/backend/internal/auth"
	"github.com/inotebook/backend/internal/middleware"
	"github.com/inotebook/backend/internal/utils"
)

// SetupRoutes configures the router hierarchy. Routes group by
// namespace: user credential routes and note CRUD under /api, the admin
// namespace under /api/admin, plus an unprotected health endpoint.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.CORS(&s.Config.CORS))
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	// Health check (unprotected)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Db.HealthCheck(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
			return
		}

		utils.JSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"version": s.Config.App.Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		// User credential and session routes
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", s.Handlers.AuthHandler.Signup)
			r.Post("/login", s.Handlers.AuthHandler.Login)
			r.Post("/logout", s.Handlers.AuthHandler.Logout)
			r.Post("/reset-password", s.Handlers.AuthHandler.RequestPasswordReset)
			r.Post("/reset-password/{token}", s.Handlers.AuthHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession(s.userSession.tokens, s.userSession.cookies))
				r.Post("/delete-my-account", s.Handlers.AuthHandler.DeleteAccount)
			})
		})

		// Note routes (all behind the user session)
		r.Route("/notes", func(r chi.Router) {
			r.Use(auth.RequireSession(s.userSession.tokens, s.userSession.cookies))

			r.Post("/create", s.Handlers.NoteHandler.Create)
			r.Get("/getnotes", s.Handlers.NoteHandler.List)
			r.Put("/edit/{id}", s.Handlers.NoteHandler.Update)
			r.Delete("/delete/{id}", s.Handlers.NoteHandler.Delete)
		})

		// Admin namespace. A user session cookie is never accepted here.
		r.Route("/admin", func(r chi.Router) {
			r.Post("/register", s.Handlers.AdminHandler.Register)
			r.Post("/login", s.Handlers.AdminHandler.Login)
			r.Post("/logout", s.Handlers.AdminHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession(s.adminSession.tokens, s.adminSession.cookies))
				r.Get("/dashboard-data", s.Handlers.AdminHandler.DashboardData)
			})
		})
	})

	s.router = r
}
