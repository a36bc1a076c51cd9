// Package middlewarectx содержит HTTP middleware для проверки сессионного
// токена и ограничения частоты запросов.
//
// SessionAuthMiddleware извлекает непрозрачный токен из cookie или
// заголовка Authorization, разрешает его в сессию через сервис авторизации
// и проверяет роль пользователя против допустимого для группы маршрутов
// набора ролей. При успехе кладет сессию и пользователя в контекст запроса.
//
// Отсутствующий, отозванный и истёкший токен дают HTTP 401 Unauthorized,
// недостаточная роль — HTTP 403 Forbidden.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravshanbekov/auth-gateway/internal/http/response"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для пользователя в контексте (*models.User)
	User Key = "user"
	// Session — ключ для сессии в контексте (*models.Session)
	Session Key = "session"
)

// TokenCookie — имя cookie с сессионным токеном.
const TokenCookie = "token"

// Service описывает интерфейс сервиса авторизации.
type Service interface {
	Authorize(ctx context.Context, token string, acceptableRoles ...models.Role) (*models.Session, *models.User, error)
}

// TokenFromRequest извлекает сессионный токен из cookie "token" или
// заголовка Authorization с префиксом Bearer. Возвращает пустую строку,
// если токен не передан.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionAuthMiddleware возвращает HTTP middleware, который авторизует
// запрос по сессионному токену и набору допустимых ролей.
func SessionAuthMiddleware(authService Service, log *slog.Logger, acceptableRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionAuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := TokenFromRequest(r)
			if token == "" {
				log.Error("missing session token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing session token"))
				return
			}

			session, user, err := authService.Authorize(r.Context(), token, acceptableRoles...)
			if err != nil {
				if errors.Is(err, models.ErrForbidden) {
					log.Error("insufficient role")
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("forbidden"))
					return
				}
				log.Error("invalid or expired session token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session token"))
				return
			}

			ctx := context.WithValue(r.Context(), Session, session)
			ctx = context.WithValue(ctx, User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает аутентифицированного пользователя запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok
}

// SessionFromContext возвращает сессию запроса.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(Session).(*models.Session)
	return session, ok
}
