package storage

import (
	"context"
	"fmt"

	"github.com/ravshanbekov/auth-gateway/internal/models"
)

// CreateSession сохраняет новую сессию и возвращает её вместе с
// присвоенными базой ID и временем создания.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) (*models.Session, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (user_id, token, user_agent, is_active, expires_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		session.UserID, session.Token, session.UserAgent, session.IsActive,
		session.ExpiresAt).Scan(&session.ID, &session.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// FindActiveSessionByToken возвращает действующую сессию по токену.
// Отозванные и истёкшие сессии отфильтровываются на стороне базы,
// для них возвращается sql.ErrNoRows.
func (s *Storage) FindActiveSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	const op = "storage.FindActiveSessionByToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, token, user_agent, is_active, created_at, expires_at
			  FROM sessions
			  WHERE token = $1 AND is_active AND expires_at > now()`
	session := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, token)
	if err := row.Scan(&session.ID, &session.UserID, &session.Token, &session.UserAgent,
		&session.IsActive, &session.CreatedAt, &session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// FindActiveSessionByID возвращает действующую сессию по её ID.
func (s *Storage) FindActiveSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	const op = "storage.FindActiveSessionByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, token, user_agent, is_active, created_at, expires_at
			  FROM sessions
			  WHERE id = $1 AND is_active AND expires_at > now()`
	session := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&session.ID, &session.UserID, &session.Token, &session.UserAgent,
		&session.IsActive, &session.CreatedAt, &session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// RevokeSessionByToken переводит is_active сессии в false одним атомарным
// обновлением и возвращает изменённую запись. Для неизвестного токена
// возвращается sql.ErrNoRows.
func (s *Storage) RevokeSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	const op = "storage.RevokeSessionByToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE sessions
			  SET is_active = FALSE
			  WHERE token = $1
			  RETURNING id, user_id, token, user_agent, is_active, created_at, expires_at`
	session := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, token)
	if err := row.Scan(&session.ID, &session.UserID, &session.Token, &session.UserAgent,
		&session.IsActive, &session.CreatedAt, &session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}
