package models

import "time"

// Session представляет один успешный вход пользователя.
//
// Сессия пригодна для авторизации только пока IsActive == true
// и ExpiresAt строго в будущем. Logout переводит IsActive в false,
// других изменений записи не бывает.
type Session struct {
	ID        int64     `json:"id"`         // Уникальный идентификатор сессии
	UserID    int64     `json:"user_id"`    // Владелец сессии
	Token     string    `json:"token"`      // Непрозрачный уникальный токен
	UserAgent string    `json:"user_agent"` // User-Agent клиента, справочное поле
	IsActive  bool      `json:"is_active"`  // false после logout
	CreatedAt time.Time `json:"created_at"` // Время создания
	ExpiresAt time.Time `json:"expires_at"` // Время истечения
}

// Valid сообщает, пригодна ли сессия для авторизации в момент now.
func (s *Session) Valid(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}
