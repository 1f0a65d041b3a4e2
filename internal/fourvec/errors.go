package fourvec

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a momentum component beyond [MaxComponent].
var ErrOutOfRange = errors.New("fourvec: momentum component out of allowed range")

// OutOfRangeError reports which component failed the bound check.
type OutOfRangeError struct {
	Component string
	Value     float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s=%g exceeds %g", ErrOutOfRange.Error(), e.Component, e.Value, MaxComponent)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
