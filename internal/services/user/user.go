// Package user содержит логику бизнес-уровня для административного
// управления пользователями: постраничный список, создание с хэшированием
// пароля, чтение, обновление и удаление.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ravshanbekov/auth-gateway/internal/lib/password"
	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// Repository описывает контракт для работы с пользователями в базе данных.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, user models.User) error
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// Service реализует административные операции над пользователями.
type Service struct {
	users Repository
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(users Repository, log *slog.Logger) *Service {
	return &Service{
		users: users,
		log:   log,
	}
}

// Create сохраняет нового пользователя. Пароль, если задан, хэшируется
// перед записью; пустая роль заменяется на user.
func (s *Service) Create(ctx context.Context, user models.User, rawPassword string) (*models.User, error) {
	const op = "user.Create"

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if rawPassword != "" {
		hash, err := password.Hash(rawPassword)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hash
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Get возвращает пользователя по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// List возвращает страницу пользователей.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*models.User, error) {
	const op = "user.List"

	offset := (page - 1) * pageSize
	users, err := s.users.ListUsers(ctx, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Update обновляет профиль пользователя и возвращает свежую запись.
// Хэш пароля этим методом не меняется.
func (s *Service) Update(ctx context.Context, id int64, user models.User) (*models.User, error) {
	const op = "user.Update"

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := s.users.UpdateUser(ctx, id, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	updated, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Delete удаляет пользователя. Возвращает false, если он не найден.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.users.DeleteUser(ctx, id)
}
