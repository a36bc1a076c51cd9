// Package auth содержит логику бизнес-уровня для аутентификации
// пользователей по номеру телефона и паролю.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ravshanbekov/auth-gateway/internal/lib/password"
	"github.com/ravshanbekov/auth-gateway/internal/metrics"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// UserRepository описывает контракт для поиска пользователей в базе данных.
type UserRepository interface {
	// GetUserByPhone возвращает пользователя по номеру телефона
	// или sql.ErrNoRows, если не найден.
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)

	// UpdateUserPassword сохраняет новый хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// SessionCreator описывает контракт выпуска новой сессии.
type SessionCreator interface {
	Create(ctx context.Context, userID int64, userAgent string, ttl time.Duration) (*models.Session, error)
}

// Service отвечает за проверку учетных данных и выпуск сессий.
type Service struct {
	users    UserRepository
	sessions SessionCreator
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, sessions SessionCreator, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Authenticate проверяет пару телефон/пароль и при успехе выпускает ровно
// одну новую сессию. Несуществующий телефон и неверный пароль дают
// одинаковую ошибку models.ErrInvalidCredentials, чтобы не раскрывать,
// какое из полей неверно.
func (s *Service) Authenticate(ctx context.Context, phoneNumber, rawPassword, userAgent string) (*models.Session, *models.User, error) {
	const op = "auth.Authenticate"

	user, err := s.users.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, nil, models.ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !password.Verify(user.PasswordHash, rawPassword) {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, nil, models.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID, userAgent, 0)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return session, user, nil
}

// ResetPassword меняет пароль аутентифицированного пользователя.
// Неверный старый пароль дает models.ErrInvalidCredentials.
func (s *Service) ResetPassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	const op = "auth.ResetPassword"

	if !password.Verify(user.PasswordHash, oldPassword) {
		return models.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
