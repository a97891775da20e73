package buffer

import "errors"

var (
	// ErrBadSize indicates a zero or negative request size.
	ErrBadSize = errors.New("buffer: size must be positive")

	// ErrTooLarge indicates a request above the configured size ceiling.
	ErrTooLarge = errors.New("buffer: size exceeds limit")

	// ErrExhausted indicates the operating system could not satisfy the request.
	ErrExhausted = errors.New("buffer: out of address space")
)
