package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravshanbekov/auth-gateway/internal/models"
)

func TestStorage_CreateAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	verify := NewTestVerification(storage)
	ctx := context.Background()

	data := GetTestUserData()
	firstName := "Ivan"
	id, err := storage.CreateUser(ctx, models.User{
		PhoneNumber:  &data.PhoneNumber,
		Role:         data.Role,
		FirstName:    &firstName,
		PasswordHash: data.PasswordHash,
	})
	require.NoError(t, err)
	verify.VerifyUserExists(t, id)

	byPhone, err := storage.GetUserByPhone(ctx, data.PhoneNumber)
	require.NoError(t, err)
	assert.Equal(t, id, byPhone.ID)
	assert.Equal(t, data.Role, byPhone.Role)
	assert.Equal(t, data.PasswordHash, byPhone.PasswordHash)
	require.NotNil(t, byPhone.FirstName)
	assert.Equal(t, firstName, *byPhone.FirstName)

	byID, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, byPhone, byID)
}

func TestStorage_GetUserByPhone_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetUserByPhone(context.Background(), "+70000000000")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_CreateUser_WithoutPassword(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	phone := "+79990000001"
	id, err := storage.CreateUser(ctx, models.User{
		PhoneNumber: &phone,
		Role:        models.RoleUser,
	})
	require.NoError(t, err)

	// NULL в password_hash читается как пустая строка.
	user, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	factory.CreateUser(t, "+79990000001", "hash1", models.RoleUser)
	factory.CreateUser(t, "+79990000002", "hash2", models.RoleAdmin)
	factory.CreateUser(t, "+79990000003", "hash3", models.RoleUser)

	firstPage, err := storage.ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Less(t, firstPage[0].ID, firstPage[1].ID)

	secondPage, err := storage.ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)

	empty, err := storage.ListUsers(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStorage_UpdateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	id := factory.CreateUser(t, "+79990000001", "hash", models.RoleUser)

	newPhone := "+79990000009"
	lastName := "Petrov"
	err := storage.UpdateUser(ctx, id, models.User{
		PhoneNumber: &newPhone,
		Role:        models.RoleAdmin,
		LastName:    &lastName,
	})
	require.NoError(t, err)

	updated, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, newPhone, *updated.PhoneNumber)
	require.NotNil(t, updated.LastName)
	assert.Equal(t, lastName, *updated.LastName)

	err = storage.UpdateUser(ctx, 9999, models.User{Role: models.RoleUser})
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_UpdateUserPassword(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	id := factory.CreateUser(t, "+79990000001", "old-hash", models.RoleUser)

	err := storage.UpdateUserPassword(ctx, id, "new-hash")
	require.NoError(t, err)

	user, err := storage.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)

	err = storage.UpdateUserPassword(ctx, 9999, "new-hash")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_DeleteUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	id := factory.CreateUser(t, "+79990000001", "hash", models.RoleUser)
	factory.CreateSession(t, id, NewTestToken(), true, time.Now().Add(time.Hour))

	deleted, err := storage.DeleteUser(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)
	verify.VerifyUserDeleted(t, id)

	// Сессии пользователя удаляются каскадно.
	verify.VerifySessionCount(t, id, 0)

	deleted, err = storage.DeleteUser(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStorage_CreateAndFindSession(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	userID := factory.CreateUser(t, "+79990000001", "hash", models.RoleUser)
	token := NewTestToken()

	created, err := storage.CreateSession(ctx, models.Session{
		UserID:    userID,
		Token:     token,
		UserAgent: "test-agent",
		IsActive:  true,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := storage.FindActiveSessionByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, userID, found.UserID)
	assert.True(t, found.IsActive)

	byID, err := storage.FindActiveSessionByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, found.Token, byID.Token)
}

func TestStorage_FindActiveSessionByToken_FiltersInvalid(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	userID := factory.CreateUser(t, "+79990000001", "hash", models.RoleUser)

	revokedToken := NewTestToken()
	factory.CreateSession(t, userID, revokedToken, false, time.Now().Add(time.Hour))

	expiredToken := NewTestToken()
	factory.CreateSession(t, userID, expiredToken, true, time.Now().Add(-time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{name: "revoked session", token: revokedToken},
		{name: "expired session", token: expiredToken},
		{name: "unknown token", token: NewTestToken()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.FindActiveSessionByToken(ctx, tt.token)
			require.ErrorIs(t, err, sql.ErrNoRows)
		})
	}
}

func TestStorage_RevokeSessionByToken(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	userID := factory.CreateUser(t, "+79990000001", "hash", models.RoleUser)
	token := NewTestToken()
	sessionID := factory.CreateSession(t, userID, token, true, time.Now().Add(time.Hour))

	revoked, err := storage.RevokeSessionByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, revoked.ID)
	assert.False(t, revoked.IsActive)
	verify.VerifySessionRevoked(t, sessionID)

	// Отозванная сессия больше не находится среди действующих.
	_, err = storage.FindActiveSessionByToken(ctx, token)
	require.ErrorIs(t, err, sql.ErrNoRows)

	// Повторный отзыв возвращает ту же запись и не меняет её.
	again, err := storage.RevokeSessionByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, again.ID)
	assert.False(t, again.IsActive)

	_, err = storage.RevokeSessionByToken(ctx, NewTestToken())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_TwoActiveSessionsPerUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	userID := factory.CreateUser(t, "+79990000001", "hash", models.RoleUser)

	firstToken := NewTestToken()
	secondToken := NewTestToken()
	factory.CreateSession(t, userID, firstToken, true, time.Now().Add(time.Hour))
	factory.CreateSession(t, userID, secondToken, true, time.Now().Add(time.Hour))
	verify.VerifySessionCount(t, userID, 2)

	// Отзыв одной сессии не затрагивает другую.
	_, err := storage.RevokeSessionByToken(ctx, firstToken)
	require.NoError(t, err)

	_, err = storage.FindActiveSessionByToken(ctx, secondToken)
	require.NoError(t, err)
}

func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(storage))

	_, err := storage.DB.Exec(`DROP TABLE sessions`)
	require.NoError(t, err)
	require.Error(t, CheckDatabaseReady(storage))
}

func TestStorage_ContextCancelled(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.GetUserByID(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)

	_, err = storage.FindActiveSessionByToken(ctx, "token")
	require.ErrorIs(t, err, context.Canceled)
}
