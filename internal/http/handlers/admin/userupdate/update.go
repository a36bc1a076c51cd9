// Package userupdate реализует HTTP-обработчик обновления профиля
// пользователя в административном API. Пароль этим маршрутом не меняется.
package userupdate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ravshanbekov/auth-gateway/internal/http/response"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// Request — структура входных данных для обновления пользователя.
type Request struct {
	TelegramID       *int64  `json:"telegram_id"`
	TelegramUsername *string `json:"telegram_username" validate:"omitempty,max=32"`
	PhoneNumber      *string `json:"phone_number" validate:"omitempty,max=20"`
	Role             string  `json:"role" validate:"omitempty,oneof=user admin superuser"`
	FirstName        *string `json:"first_name" validate:"omitempty,max=64"`
	LastName         *string `json:"last_name" validate:"omitempty,max=64"`
}

// Handler обрабатывает запросы на обновление пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления пользователя.
type Service interface {
	Update(ctx context.Context, id int64, user models.User) (*models.User, error)
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
// @Summary Обновление пользователя
// @Description Обновляет профиль пользователя по его ID.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param request body Request true "Новые данные пользователя"
// @Success 200 {object} map[string]any "Обновленный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

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
	updated, err := h.service.Update(r.Context(), id, user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("user not found", slog.Int64("user_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update user"))
		return
	}

	log.Info("user updated", slog.Int64("user_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": updated,
	}))
}
