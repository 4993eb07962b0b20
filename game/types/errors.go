package types

import "github.com/pkg/errors"

var (
	// ErrInvalidInput marks a malformed direction or configuration value
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyOver is returned by operations attempted after game over
	ErrAlreadyOver = errors.New("game already over")
	// ErrNoSpaceAvailable means random placement found no free cell
	ErrNoSpaceAvailable = errors.New("no space available")
)
