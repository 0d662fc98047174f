package offers

import "errors"

var (
	// ErrOfferNotFound возвращается, когда предложение не найдено
	ErrOfferNotFound = errors.New("offer not found")

	// ErrNotTemplate возвращается, когда рассылается предложение, не являющееся шаблоном
	ErrNotTemplate = errors.New("offer is not a template")

	// ErrUserNotFound возвращается, когда получатель не зарегистрирован
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
