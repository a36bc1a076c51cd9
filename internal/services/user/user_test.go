package user_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ravshanbekov/auth-gateway/internal/lib/password"
	"github.com/ravshanbekov/auth-gateway/internal/models"
	userservice "github.com/ravshanbekov/auth-gateway/internal/services/user"
)

// Мок для user.Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUser(ctx context.Context, id int64, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *RepoMock) DeleteUser(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Create(t *testing.T) {
	phone := "+79991234567"
	created := &models.User{ID: 1, PhoneNumber: &phone, Role: models.RoleUser}

	repo := new(RepoMock)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// Роль по умолчанию и хэш вместо открытого пароля.
		return u.Role == models.RoleUser && password.Verify(u.PasswordHash, "raw-password")
	})).Return(int64(1), nil).Once()
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(created, nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	got, err := svc.Create(context.Background(), models.User{PhoneNumber: &phone}, "raw-password")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	repo.AssertExpectations(t)
}

func TestService_Create_WithoutPassword(t *testing.T) {
	created := &models.User{ID: 1, Role: models.RoleAdmin}

	repo := new(RepoMock)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleAdmin && u.PasswordHash == ""
	})).Return(int64(1), nil).Once()
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(created, nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	got, err := svc.Create(context.Background(), models.User{Role: models.RoleAdmin}, "")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	repo.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	users := []*models.User{{ID: 21}, {ID: 22}}

	repo := new(RepoMock)
	// Вторая страница по 20 элементов — смещение 20.
	repo.On("ListUsers", mock.Anything, 20, 20).Return(users, nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	got, err := svc.List(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	repo.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	updated := &models.User{ID: 1, Role: models.RoleAdmin}

	repo := new(RepoMock)
	repo.On("UpdateUser", mock.Anything, int64(1), mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleAdmin
	})).Return(nil).Once()
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(updated, nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	got, err := svc.Update(context.Background(), 1, models.User{Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	repo.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateUser", mock.Anything, int64(99), mock.Anything).
		Return(sql.ErrNoRows).Once()

	svc := userservice.New(repo, newNoopLogger())

	_, err := svc.Update(context.Background(), 99, models.User{})
	require.ErrorIs(t, err, sql.ErrNoRows)

	repo.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteUser", mock.Anything, int64(1)).Return(true, nil).Once()
	repo.On("DeleteUser", mock.Anything, int64(99)).Return(false, nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	deleted, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	repo.AssertExpectations(t)
}
