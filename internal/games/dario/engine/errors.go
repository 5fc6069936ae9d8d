package engine

import "errors"

var (
	// ErrInvalidDirection is returned when a direction is not one of the four
	// cardinal directions.
	ErrInvalidDirection = errors.New("engine: invalid direction")

	// ErrInvalidOptions is returned by New and Restore for unusable options.
	ErrInvalidOptions = errors.New("engine: invalid options")

	// ErrInvalidTransition is returned when an event is not allowed from the
	// current mode.
	ErrInvalidTransition = errors.New("engine: invalid mode transition")

	// ErrInvalidState is returned by Restore when a state does not fit its
	// options.
	ErrInvalidState = errors.New("engine: invalid state")

	// errSpawnBlocked signals that a new pill could not enter the board.
	errSpawnBlocked = errors.New("engine: spawn blocked")
)
