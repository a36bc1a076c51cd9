// Package logout реализует HTTP-обработчик выхода пользователя.
//
// Обработчик отзывает сессию по токену из cookie или заголовка
// Authorization и сбрасывает сессионную cookie. Отзыв идемпотентен:
// повторный выход по тому же токену также завершается успешно.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravshanbekov/auth-gateway/internal/http/middlewarectx"
	"github.com/ravshanbekov/auth-gateway/internal/http/response"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log            *slog.Logger // Логгер для записи операций и ошибок
	sessionService Service      // Сервис управления сессиями
	cookieDomain   string       // Домен сессионной cookie
}

// Service описывает интерфейс отзыва сессии.
type Service interface {
	Revoke(ctx context.Context, token string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessionService Service, cookieDomain string) *Handler {
	return &Handler{
		log:            log,
		sessionService: sessionService,
		cookieDomain:   cookieDomain,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Отзывает сессию и сбрасывает сессионную cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Failure 401 {object} response.ErrorResponse "Токен не передан"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := middlewarectx.TokenFromRequest(r)
	if token == "" {
		log.Error("missing session token")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing session token"))
		return
	}

	if err := h.sessionService.Revoke(r.Context(), token); err != nil {
		log.Error("failed to revoke session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.TokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	log.Info("logout success")
	render.JSON(w, r, response.OK())
}
