package models

import "fmt"

// Role — роль пользователя. Закрытый набор значений; иерархии ролей нет,
// доступ определяется явным набором допустимых ролей маршрута.
type Role string

const (
	// RoleUser — обычный пользователь.
	RoleUser Role = "user"
	// RoleAdmin — администратор.
	RoleAdmin Role = "admin"
	// RoleSuperuser — суперпользователь.
	RoleSuperuser Role = "superuser"
)

// ParseRole преобразует строку в Role, возвращает ошибку для неизвестного значения.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperuser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// In сообщает, входит ли роль в набор допустимых ролей.
// Сравнение ролей выполняется строгим равенством значений.
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
