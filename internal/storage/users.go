package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ravshanbekov/auth-gateway/internal/models"
)

const userColumns = `id, telegram_id, telegram_username, phone_number, role,
			      first_name, last_name, COALESCE(password_hash, ''), created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var telegramID sql.NullInt64
	var telegramUsername, phoneNumber, firstName, lastName sql.NullString
	var role string

	if err := row.Scan(&u.ID, &telegramID, &telegramUsername, &phoneNumber, &role,
		&firstName, &lastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	if telegramID.Valid {
		u.TelegramID = &telegramID.Int64
	}
	if telegramUsername.Valid {
		u.TelegramUsername = &telegramUsername.String
	}
	if phoneNumber.Valid {
		u.PhoneNumber = &phoneNumber.String
	}
	if firstName.Valid {
		u.FirstName = &firstName.String
	}
	if lastName.Valid {
		u.LastName = &lastName.String
	}
	u.Role = models.Role(role)
	return u, nil
}

// CreateUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (telegram_id, telegram_username, phone_number, role,
			      first_name, last_name, password_hash)
			  VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.TelegramID, user.TelegramUsername, user.PhoneNumber, string(user.Role),
		user.FirstName, user.LastName, user.PasswordHash).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByPhone возвращает пользователя по номеру телефона.
func (s *Storage) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	const op = "storage.GetUserByPhone"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE phone_number = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, phoneNumber))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByID возвращает пользователя по его ID.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает страницу пользователей, отсортированных по ID.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		var telegramID sql.NullInt64
		var telegramUsername, phoneNumber, firstName, lastName sql.NullString
		var role string
		if err = rows.Scan(&u.ID, &telegramID, &telegramUsername, &phoneNumber, &role,
			&firstName, &lastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if telegramID.Valid {
			u.TelegramID = &telegramID.Int64
		}
		if telegramUsername.Valid {
			u.TelegramUsername = &telegramUsername.String
		}
		if phoneNumber.Valid {
			u.PhoneNumber = &phoneNumber.String
		}
		if firstName.Valid {
			u.FirstName = &firstName.String
		}
		if lastName.Valid {
			u.LastName = &lastName.String
		}
		u.Role = models.Role(role)
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser обновляет профиль пользователя. Возвращает sql.ErrNoRows,
// если пользователь не найден.
func (s *Storage) UpdateUser(ctx context.Context, id int64, user models.User) error {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET telegram_id = $1,
			      telegram_username = $2,
			      phone_number = $3,
			      role = $4,
			      first_name = $5,
			      last_name = $6,
			      updated_at = now()
			  WHERE id = $7`
	res, err := s.DB.ExecContext(ctx, query,
		user.TelegramID, user.TelegramUsername, user.PhoneNumber, string(user.Role),
		user.FirstName, user.LastName, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// UpdateUserPassword сохраняет новый хэш пароля пользователя.
func (s *Storage) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	const op = "storage.UpdateUserPassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = NULLIF($1, ''),
			      updated_at = now()
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// DeleteUser удаляет пользователя. Сессии удаляются каскадно на уровне БД.
func (s *Storage) DeleteUser(ctx context.Context, id int64) (bool, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected > 0, nil
}
