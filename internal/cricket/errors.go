package cricket

import (
	"errors"
	"fmt"
)

// Categorical error kinds. Handlers map these to HTTP status codes; the
// specific sentinels below wrap one of them so errors.Is matches both.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrStateConflict = errors.New("operation invalid for current state")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrFeedSync      = errors.New("feed sync failed")
)

var (
	// ErrTossNotSet means the batting order cannot be resolved yet, so
	// predictions have no innings to attach to.
	ErrTossNotSet = fmt.Errorf("%w: toss not set", ErrStateConflict)

	// ErrInningsNotOpen means the target innings is pending, locked or scored.
	ErrInningsNotOpen = fmt.Errorf("%w: innings not open", ErrStateConflict)

	// ErrInningsNotStarted means innings2 was asked to do something before
	// innings1 finished opening it.
	ErrInningsNotStarted = fmt.Errorf("%w: innings not started", ErrStateConflict)

	// ErrUnknownPlayer means the player ID is not part of the room.
	ErrUnknownPlayer = fmt.Errorf("%w: unknown player", ErrNotFound)

	// ErrScoreOutOfRange means the submitted score is not a finite number
	// within the room's configured bounds.
	ErrScoreOutOfRange = fmt.Errorf("%w: score out of range", ErrValidation)
)
