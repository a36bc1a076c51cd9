// Package authgateway предоставляет маршруты и сборку основного приложения.
package authgateway

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ravshanbekov/auth-gateway/internal/config"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/admin/usercreate"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/admin/userlist"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/admin/userread"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/admin/userremove"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/admin/userupdate"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/auth/login"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/auth/logout"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/auth/me"
	"github.com/ravshanbekov/auth-gateway/internal/http/handlers/auth/resetpassword"
	"github.com/ravshanbekov/auth-gateway/internal/http/middlewarectx"
	"github.com/ravshanbekov/auth-gateway/internal/models"
	authservice "github.com/ravshanbekov/auth-gateway/internal/services/auth"
	authzservice "github.com/ravshanbekov/auth-gateway/internal/services/authz"
	sessionservice "github.com/ravshanbekov/auth-gateway/internal/services/session"
	userservice "github.com/ravshanbekov/auth-gateway/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, authService *authservice.Service, sessionService *sessionservice.Service, authzService *authzservice.Service, userService *userservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/auth/login", login.New(logger, authService, cfg.CookieDomain).ServeHTTP)
		})
		r.Post("/auth/logout", logout.New(logger, sessionService, cfg.CookieDomain).ServeHTTP)

		// Группа для любого аутентифицированного пользователя
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionAuthMiddleware(authzService, logger,
				models.RoleUser, models.RoleAdmin, models.RoleSuperuser))
			r.Get("/auth/me", me.New(logger).ServeHTTP)
			r.Post("/auth/reset-password", resetpassword.New(logger, authService).ServeHTTP)
		})

		// Административная группа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionAuthMiddleware(authzService, logger,
				models.RoleAdmin, models.RoleSuperuser))
			r.Get("/admin/users", userlist.New(logger, userService).ServeHTTP)
			r.Post("/admin/users", usercreate.New(logger, userService).ServeHTTP)
			r.Get("/admin/users/{id}", userread.New(logger, userService).ServeHTTP)
			r.Put("/admin/users/{id}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/admin/users/{id}", userremove.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
