package settings

import "errors"

var (
	// ErrMachineNotFound возвращается, когда автомат не найден
	ErrMachineNotFound = errors.New("machine not found")

	// ErrLastMachine возвращается при попытке удалить последний автомат площадки
	ErrLastMachine = errors.New("at least one machine must remain")

	// ErrCannotBlockToday возвращается при попытке закрыть текущий день
	ErrCannotBlockToday = errors.New("today cannot be blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
