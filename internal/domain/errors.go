package domain

import "errors"

var (
	// ErrInvalidWeekStart возвращается, когда начало недели не является понедельником в формате YYYY-MM-DD
	ErrInvalidWeekStart = errors.New("domain: invalid week start")
)
