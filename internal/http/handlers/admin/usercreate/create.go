// Package usercreate реализует HTTP-обработчик создания пользователя
// в административном API. Пароль, если передан, хэшируется на уровне
// бизнес-логики и в ответ не попадает.
package usercreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ravshanbekov/auth-gateway/internal/http/response"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// Request — структура входных данных для создания пользователя.
type Request struct {
	TelegramID       *int64  `json:"telegram_id"`
	TelegramUsername *string `json:"telegram_username" validate:"omitempty,max=32"`
	PhoneNumber      *string `json:"phone_number" validate:"omitempty,max=20"`
	Role             string  `json:"role" validate:"omitempty,oneof=user admin superuser"`
	FirstName        *string `json:"first_name" validate:"omitempty,max=64"`
	LastName         *string `json:"last_name" validate:"omitempty,max=64"`
	Password         string  `json:"password" validate:"omitempty,min=6"`
}

// Handler обрабатывает запросы на создание пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	Create(ctx context.Context, user models.User, rawPassword string) (*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание пользователя
// @Description Создает пользователя с опциональными телефоном, ролью и паролем.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} map[string]any "Созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usercreate"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user := models.User{
		TelegramID:       req.TelegramID,
		TelegramUsername: req.TelegramUsername,
		PhoneNumber:      req.PhoneNumber,
		Role:             models.Role(req.Role),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
	}
	created, err := h.service.Create(r.Context(), user, req.Password)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create user"))
		return
	}

	log.Info("user created", slog.Int64("user_id", created.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": created,
	}))
}
