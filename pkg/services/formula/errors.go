package formula

import "errors"

var (
	// ErrNotComputable reports an input for which the formula has no defined
	// value, such as a zero divisor.
	ErrNotComputable = errors.New("not computable")
	// ErrInvalidInput reports structurally invalid input, such as a negative
	// count.
	ErrInvalidInput = errors.New("invalid input")
)
