package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/job-board/internal/admin"
	"github.com/frahmantamala/job-board/internal/application"
	"github.com/frahmantamala/job-board/internal/auth"
	"github.com/frahmantamala/job-board/internal/job"
	"github.com/frahmantamala/job-board/internal/profile"
	"github.com/frahmantamala/job-board/internal/transport/middleware"
	"github.com/frahmantamala/job-board/internal/transport/swagger"
	"github.com/frahmantamala/job-board/internal/user"
)

type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Profile     *profile.Handler
	Job         *job.Handler
	Application *application.Handler
	Admin       *admin.Handler
}

// RegisterAllRoutes mounts the API under /api/v1. Route groups encode the
// access policy: public, any authenticated user, then per-role groups.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, roles *auth.RoleAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.RefreshToken)
			sr.Post("/logout", handlers.Auth.Logout)
		})

		r.Post("/signup/employee", handlers.User.SignupEmployee)
		r.Post("/signup/company", handlers.User.SignupCompany)

		// Job browsing is public; visitors can search without an account.
		r.Get("/jobs", handlers.Job.BrowseJobs)

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Get("/users/me", handlers.User.Me)
			pr.Get("/profile", handlers.Profile.GetMyProfile)
			pr.Put("/profile", handlers.Profile.UpdateMyProfile)

			// Candidates.
			pr.Group(func(er chi.Router) {
				er.Use(roles.RequireEmployee())
				er.Post("/jobs/{id}/apply", handlers.Application.Apply)
			})

			// Company-owned posting management.
			pr.Group(func(cr chi.Router) {
				cr.Use(roles.RequireCompany())
				cr.Route("/company/jobs", func(jr chi.Router) {
					jr.Post("/", handlers.Job.CreateJob)
					jr.Get("/", handlers.Job.ListCompanyJobs)
					jr.Get("/{id}", handlers.Job.GetJob)
					jr.Put("/{id}", handlers.Job.UpdateJob)
					jr.Delete("/{id}", handlers.Job.DeleteJob)
				})
				cr.Post("/company/hr", handlers.User.AddHR)
			})

			// Applicant review, shared by the owning company and its HR staff.
			pr.Group(func(rr chi.Router) {
				rr.Use(roles.RequireCompanyOrHR())
				rr.Get("/company/jobs/{id}/applicants", handlers.Application.ListApplicants)
				rr.Get("/company/applications", handlers.Application.ListCompanyApplications)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(roles.RequireAdmin())
				ar.Route("/admin", func(sr chi.Router) {
					sr.Get("/dashboard", handlers.Admin.Dashboard)
					sr.Get("/users", handlers.Admin.ListUsers)
					sr.Delete("/users/{id}", handlers.Admin.DeleteUser)
					sr.Get("/jobs", handlers.Admin.ListJobs)
					sr.Delete("/jobs/{id}", handlers.Admin.DeleteJob)
				})
			})
		})
	})
}
