package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUserBlocked возвращается при входе заблокированного пользователя
	ErrUserBlocked = errors.New("user is blocked")

	// ErrCannotBlockAdmin возвращается при попытке заблокировать администратора
	ErrCannotBlockAdmin = errors.New("admin cannot be blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
