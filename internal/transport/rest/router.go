package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/permit-management/internal/auth"
	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/notification"
	"github.com/frahmantamala/permit-management/internal/permit"
	"github.com/frahmantamala/permit-management/internal/transport/middleware"
	"github.com/frahmantamala/permit-management/internal/transport/swagger"
	"github.com/frahmantamala/permit-management/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	employeeHandler *employee.Handler,
	permitHandler *permit.Handler,
	notificationHandler *notification.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec + swagger UI at root
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// plain liveness shape polled by the submission form
	router.Get("/health-check", healthHandler.statusHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
		})

		// public routes used by the submission form
		r.Get("/employees/by-id", employeeHandler.GetByEmployeeID)
		r.Post("/permit-requests", permitHandler.CreatePermitRequest)
		r.Get("/permit-requests/{id}", permitHandler.GetPermitRequest)

		// authenticated routes
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Get("/notifications", notificationHandler.ListNotifications)
			pr.Get("/notifications/unread-count", notificationHandler.UnreadCount)
			pr.Post("/notifications/mark-all-read", notificationHandler.MarkAllRead)
			pr.Patch("/notifications/{id}", notificationHandler.MarkRead)

			// HR-only review and maintenance routes
			pr.Group(func(hr chi.Router) {
				hr.Use(authHandler.RequireHR)

				hr.Get("/employees", employeeHandler.ListEmployees)
				hr.Post("/employees", employeeHandler.CreateEmployee)
				hr.Get("/employees/{id}", employeeHandler.GetEmployee)
				hr.Delete("/employees/{id}", employeeHandler.DeleteEmployee)

				hr.Get("/permit-requests", permitHandler.ListPermitRequests)
				hr.Patch("/permit-requests/{id}", permitHandler.Review)
				hr.Delete("/permit-requests/{id}", permitHandler.DeletePermitRequest)
			})
		})
	})
}
