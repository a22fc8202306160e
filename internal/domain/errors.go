package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of all input validation failures
	ErrValidation = errors.New("validation error")

	// ErrOutOfRange is returned when a time range does not fit into the 294-block day
	ErrOutOfRange = fmt.Errorf("%w: time range exceeds the day", ErrValidation)

	// ErrSourceUnavailable is returned when a roster, task or store source cannot be read
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrCacheMiss is returned by cache stores when a key has no entry
	ErrCacheMiss = errors.New("cache miss")
)
