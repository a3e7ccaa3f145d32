package passgen

import "errors"

var (
	// ErrEmptyPool is returned when sampling from a pool with no characters.
	ErrEmptyPool = errors.New("passgen: pool contains no elements")

	// ErrNegativeLength is returned when a password length is below zero.
	ErrNegativeLength = errors.New("passgen: password length must not be negative")

	// ErrNegativeCount is returned when a password count is below zero.
	ErrNegativeCount = errors.New("passgen: password count must not be negative")

	// ErrUnknownClass is returned by ClassPool for an unrecognised class name.
	ErrUnknownClass = errors.New("passgen: unknown character class")
)
