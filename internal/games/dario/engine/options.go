package engine

import "fmt"

// Default option values.
const (
	DefaultLevel        = 0
	DefaultBaseSpeed    = 15
	DefaultWidth        = 8
	DefaultHeight       = 16
	DefaultCascadeSpeed = 10
	DefaultDestroyTicks = 20
	MaxLevel            = 20
)

// Options configures a game. Options are immutable once a Game is built.
type Options struct {
	Level        int    // Difficulty, drives virus count
	BaseSpeed    int    // Ticks between gravity steps of the falling pill
	Width        int    // Visible columns
	Height       int    // Visible rows (the grid has one extra hidden row)
	InitialSeed  string // Seeds virus placement and the pill sequence
	CascadeSpeed int    // Ticks between cascade gravity steps
	DestroyTicks int    // Ticks Destroyed cells stay on the board
}

// DefaultOptions returns the standard 8x16 board at level 0.
func DefaultOptions() Options {
	return Options{
		Level:        DefaultLevel,
		BaseSpeed:    DefaultBaseSpeed,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		CascadeSpeed: DefaultCascadeSpeed,
		DestroyTicks: DefaultDestroyTicks,
	}
}

// WithDefaults fills zero fields with their defaults. Negative values are
// left alone so Validate can reject them.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.BaseSpeed == 0 {
		o.BaseSpeed = d.BaseSpeed
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.CascadeSpeed == 0 {
		o.CascadeSpeed = d.CascadeSpeed
	}
	if o.DestroyTicks == 0 {
		o.DestroyTicks = d.DestroyTicks
	}
	return o
}

// Validate checks that the options describe a playable board.
func (o Options) Validate() error {
	switch {
	case o.Width < 2:
		return fmt.Errorf("%w: width %d", ErrInvalidOptions, o.Width)
	case o.Height <= 0:
		return fmt.Errorf("%w: height %d", ErrInvalidOptions, o.Height)
	case o.BaseSpeed <= 0:
		return fmt.Errorf("%w: base speed %d", ErrInvalidOptions, o.BaseSpeed)
	case o.CascadeSpeed <= 0:
		return fmt.Errorf("%w: cascade speed %d", ErrInvalidOptions, o.CascadeSpeed)
	case o.DestroyTicks <= 0:
		return fmt.Errorf("%w: destroy ticks %d", ErrInvalidOptions, o.DestroyTicks)
	case o.Level < 0:
		return fmt.Errorf("%w: level %d", ErrInvalidOptions, o.Level)
	}
	return nil
}
