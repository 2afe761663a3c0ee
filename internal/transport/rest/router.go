package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-leave-management/internal/auth"
	"github.com/frahmantamala/hr-leave-management/internal/department"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
	"github.com/frahmantamala/hr-leave-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-leave-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-leave-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Employee   *employee.Handler
	Department *department.Handler
	LeaveType  *leavetype.Handler
	Leave      *leave.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
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

		// Everything below requires a valid bearer token.
		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Get("/users/me", handlers.User.GetCurrentUser)
			pr.Patch("/users/me/password", handlers.User.ChangePassword)

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", handlers.Department.List)
				dr.Get("/{id}", handlers.Department.Get)

				dr.Group(func(ar chi.Router) {
					ar.Use(auth.RequireAdmin())
					ar.Post("/", handlers.Department.Create)
					ar.Put("/{id}", handlers.Department.Update)
					ar.Patch("/{id}/manager", handlers.Department.AssignManager)
					ar.Patch("/{id}/activate", handlers.Department.Activate)
					ar.Patch("/{id}/deactivate", handlers.Department.Deactivate)
				})
			})

			pr.Route("/leave-types", func(lr chi.Router) {
				lr.Get("/", handlers.LeaveType.List)
				lr.Get("/{id}", handlers.LeaveType.Get)

				lr.Group(func(ar chi.Router) {
					ar.Use(auth.RequireAdmin())
					ar.Post("/", handlers.LeaveType.Create)
					ar.Put("/{id}", handlers.LeaveType.Update)
					ar.Patch("/{id}/activate", handlers.LeaveType.Activate)
					ar.Patch("/{id}/deactivate", handlers.LeaveType.Deactivate)
				})
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/{id}", handlers.Employee.Get)
				er.Get("/{id}/leaves", handlers.Leave.ListForEmployee)
				er.Get("/{id}/leave-balance", handlers.Leave.Balance)
				er.Get("/{id}/leave-eligibility", handlers.Leave.Eligibility)

				er.Group(func(ar chi.Router) {
					ar.Use(auth.RequireAdmin())
					ar.Get("/", handlers.Employee.List)
					ar.Post("/", handlers.Employee.Create)
					ar.Put("/{id}", handlers.Employee.Update)
					ar.Patch("/{id}/terminate", handlers.Employee.Terminate)
					ar.Patch("/{id}/department", handlers.Employee.MoveDepartment)
					ar.Patch("/{id}/salary", handlers.Employee.IncrementSalary)
					ar.Patch("/{id}/job-title", handlers.Employee.ChangeJobTitle)
				})
			})

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Post("/", handlers.Leave.Apply)
				lr.Patch("/{id}/withdraw", handlers.Leave.Withdraw)
				lr.Patch("/{id}/action", handlers.Leave.Action)
			})

			pr.Get("/manager/leaves", handlers.Leave.ManagerRequests)
		})
	})
}
