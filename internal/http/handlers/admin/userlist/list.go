// Package userlist реализует HTTP-обработчик постраничного списка
// пользователей для административного API.
package userlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravshanbekov/auth-gateway/internal/http/response"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 1000
)

// Handler обрабатывает запросы списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context, page, pageSize int) ([]*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей. Параметры: page (с 1), page_size (1..1000).
// @Tags Admin
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} map[string]any "Страница пользователей"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			log.Error("invalid page parameter")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page parameter"))
			return
		}
		page = parsed
	}

	pageSize := defaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			log.Error("invalid page_size parameter")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page_size parameter"))
			return
		}
		pageSize = parsed
	}

	users, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("success to list users", slog.Int("count", len(users)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users":     users,
		"page":      page,
		"page_size": pageSize,
	}))
}
