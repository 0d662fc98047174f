package get_available_slots

import "errors"

var (
	// ErrMachineNotFound возвращается, когда автомат не настроен на площадке
	ErrMachineNotFound = errors.New("machine not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
