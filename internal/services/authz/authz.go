// Package authz реализует решение об авторизации: по токену вызывающего
// находит сессию, проверяет её действительность и принадлежность роли
// пользователя допустимому для маршрута набору ролей.
package authz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// SessionProvider описывает контракт получения действующей сессии по токену.
type SessionProvider interface {
	Get(ctx context.Context, token string) (*models.Session, error)
}

// UserProvider описывает контракт получения пользователя по ID.
type UserProvider interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Service принимает решение об авторизации для одного запроса.
type Service struct {
	sessions SessionProvider
	users    UserProvider
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(sessions SessionProvider, users UserProvider, log *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		users:    users,
		log:      log,
	}
}

// Authorize разрешает или запрещает доступ по токену.
//
// Пустой токен и любая ошибка получения сессии дают
// models.ErrUnauthenticated. Если роль пользователя не входит в
// acceptableRoles, возвращается models.ErrForbidden. При успехе
// возвращаются сессия и её пользователь.
func (s *Service) Authorize(ctx context.Context, token string, acceptableRoles ...models.Role) (*models.Session, *models.User, error) {
	const op = "authz.Authorize"

	if token == "" {
		return nil, nil, models.ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, models.ErrUnauthenticated) {
			s.log.Error("session lookup failed", slog.String("op", op), sl.Err(err))
		}
		return nil, nil, models.ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		s.log.Error("session user lookup failed", slog.String("op", op), sl.Err(err))
		return nil, nil, models.ErrUnauthenticated
	}

	if !user.Role.In(acceptableRoles...) {
		return nil, nil, models.ErrForbidden
	}
	return session, user, nil
}
