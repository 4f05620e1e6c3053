package calculator

import "errors"

// ErrDivisionByZero indicates the expression contains an explicit "/0".
var ErrDivisionByZero = errors.New("division by zero")

// ErrInvalidExpression covers every other evaluation failure.
var ErrInvalidExpression = errors.New("invalid expression")

// Message returns the user-facing text for an evaluation error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivisionByZero):
		return "Division by zero"
	default:
		return "Invalid expression"
	}
}
