// Package login реализует HTTP-обработчик для входа пользователя.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование JSON, валидация полей и делегирование проверки учетных
// данных сервису аутентификации. При успешном входе сессионный токен
// устанавливается в HTTP-only cookie и возвращается в теле ответа;
// в случае ошибок формируются соответствующие HTTP-ответы.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ravshanbekov/auth-gateway/internal/http/middlewarectx"
	"github.com/ravshanbekov/auth-gateway/internal/http/response"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// Request — структура входных данных для входа.
type Request struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log          *slog.Logger        // Логгер для записи операций и ошибок
	authService  Service             // Сервис аутентификации
	validate     *validator.Validate // Валидатор для проверки входных данных
	cookieDomain string              // Домен для сессионной cookie
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Authenticate(ctx context.Context, phoneNumber, rawPassword, userAgent string) (*models.Session, *models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service, cookieDomain string) *Handler {
	return &Handler{
		log:          log,
		authService:  authService,
		validate:     validator.New(),
		cookieDomain: cookieDomain,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по номеру телефона и паролю. Устанавливает сессионный токен в cookie и возвращает его в теле ответа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("phone_number", req.PhoneNumber))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	session, user, err := h.authService.Authenticate(r.Context(), req.PhoneNumber, req.Password, r.UserAgent())
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Error("login failed: invalid credentials")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.TokenCookie,
		Value:    session.Token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	log.Info("login success", slog.Int64("user_id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"role":       user.Role,
	}))
}
