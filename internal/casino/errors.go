package casino

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-casino/poker"
)

var (
	// Registry lookups
	ErrGameNotFound   = errors.New("game type not found")
	ErrTableNotFound  = errors.New("table not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTableExists    = errors.New("table already exists")

	// Admission
	ErrTableFull         = errors.New("table is at max capacity")
	ErrInsufficientChips = errors.New("not enough chips to buy in")
	ErrTableEmpty        = errors.New("table is empty")
	ErrPlayerNotSeated   = errors.New("player is not seated at the table")

	// Round resolution. ErrDeckExhausted is terminal for an engine.
	ErrDeckExhausted    = poker.ErrDeckExhausted
	ErrEngineTerminated = errors.New("engine terminated")
)

// InsufficientChipsError reports a rejected buy-in together with the deficit.
type InsufficientChipsError struct {
	Table     string
	Required  int
	Available int
}

// Deficit is the number of additional chips the player needs.
func (e *InsufficientChipsError) Deficit() int {
	return e.Required - e.Available
}

func (e *InsufficientChipsError) Error() string {
	return fmt.Sprintf("%s at table %q: have %d, need %d (short %d)",
		ErrInsufficientChips, e.Table, e.Available, e.Required, e.Deficit())
}

// Is lets errors.Is match ErrInsufficientChips.
func (e *InsufficientChipsError) Is(target error) bool {
	return target == ErrInsufficientChips
}

// IsNotFound reports whether err is one of the lookup failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGameNotFound) ||
		errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrPlayerNotFound)
}
