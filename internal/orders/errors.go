package orders

import "errors"

var (
	ErrNotFound = errors.New("order not found")

	// ErrInsufficientStock aborts the whole placement transaction; stock is
	// never allowed to go negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError rejects a malformed order before any store work happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
