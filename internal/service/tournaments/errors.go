package tournaments

import "errors"

var (
	// ErrTournamentNotFound возвращается, когда турнир не найден
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrMatchNotFound возвращается, когда матч не найден в сетке турнира
	ErrMatchNotFound = errors.New("match not found")

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrUserNotFound возвращается, когда пользователь не зарегистрирован
	ErrUserNotFound = errors.New("user not found")

	// ErrUserBlocked возвращается, когда заблокированный пользователь пытается записаться
	ErrUserBlocked = errors.New("user is blocked")

	// ErrRegistrationClosed возвращается при записи в турнир, который уже начался
	ErrRegistrationClosed = errors.New("registration is closed")

	// ErrAlreadyRegistered возвращается, когда партнер уже играет за другого участника
	ErrAlreadyRegistered = errors.New("user is already registered")

	// ErrInvalidStatus возвращается, когда операция недопустима в текущем статусе турнира
	ErrInvalidStatus = errors.New("invalid tournament status")

	// ErrNotEnoughParticipants возвращается при старте турнира менее чем с двумя участниками
	ErrNotEnoughParticipants = errors.New("not enough participants")

	// ErrInvalidWinner возвращается, когда победитель не играет в матче
	ErrInvalidWinner = errors.New("winner does not play in this match")

	// ErrPrizesUnavailable возвращается, когда призы нельзя распределить (турнир не завершен,
	// финал без победителя или призы уже выданы)
	ErrPrizesUnavailable = errors.New("prizes cannot be distributed")

	// ErrNoPrizes возвращается, когда ни одного призового предложения не создано
	ErrNoPrizes = errors.New("no prizes to distribute")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
