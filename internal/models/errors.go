package models

import "errors"

// Доменные ошибки аутентификации и авторизации. Транспортный слой
// отображает их в HTTP-статусы: 401 для ErrInvalidCredentials и
// ErrUnauthenticated, 403 для ErrForbidden. Ошибки хранилища не входят
// в этот набор и передаются обёрнутыми через fmt.Errorf.
var (
	// ErrInvalidCredentials — неверная пара телефон/пароль. Намеренно
	// одинакова для несуществующего пользователя и неверного пароля.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated — токен отсутствует, не найден, отозван или истёк.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden — сессия действительна, но роль не входит в допустимый набор.
	ErrForbidden = errors.New("forbidden")
)
