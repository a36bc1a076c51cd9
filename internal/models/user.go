// Package models содержит доменные модели сервиса аутентификации:
// пользователя с ролью и хэшем пароля, а также серверную сессию
// с непрозрачным токеном. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не сериализуется и не логируется.
type User struct {
	ID               int64     `json:"id"`                          // Уникальный идентификатор пользователя
	TelegramID       *int64    `json:"telegram_id,omitempty"`       // Идентификатор в Telegram (опционально, уникальный)
	TelegramUsername *string   `json:"telegram_username,omitempty"` // Имя пользователя в Telegram (опционально)
	PhoneNumber      *string   `json:"phone_number,omitempty"`      // Номер телефона, используется как логин (уникальный)
	Role             Role      `json:"role"`                        // Роль пользователя: user, admin или superuser
	FirstName        *string   `json:"first_name,omitempty"`        // Имя (опционально)
	LastName         *string   `json:"last_name,omitempty"`         // Фамилия (опционально)
	PasswordHash     string    `json:"-"`                           // bcrypt-хэш пароля, пустая строка — пароль не задан
	CreatedAt        time.Time `json:"created_at"`                  // Время создания записи
	UpdatedAt        time.Time `json:"updated_at"`                  // Время последнего изменения записи
}
