package club

import (
	"errors"
	"fmt"

	"github.com/AdamBeresnev/club-ladder/internal/rating"
)

var (
	ErrDuplicateName       = errors.New("player name already exists")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrInvalidScore        = errors.New("invalid score")
	ErrAlreadyScored       = errors.New("match already scored")
	ErrStoreUnavailable    = errors.New("store unavailable")

	ErrInvalidName         = errors.New("player name cannot be empty")
	ErrInvalidFormat       = errors.New("invalid match format")
	ErrInvalidAvailability = errors.New("invalid availability")
	ErrSamePlayer          = errors.New("a player cannot face themselves")
	ErrSideMismatch        = errors.New("side does not match the scheduled players")
	ErrAmbiguousSlot       = errors.New("field slot matches more than one match")
	ErrInvalidFieldCount   = errors.New("field count must be at least 1")
	ErrInvalidImport       = errors.New("invalid import file")
	ErrInvalidTier         = rating.ErrUnknownTier
)

type InsufficientPlayersError struct {
	Format Format
	Have   int
	Need   int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("at least %d players are required for a %s session, have %d (%d short)",
		e.Need, e.Format, e.Have, e.Need-e.Have)
}

func (e *InsufficientPlayersError) Is(target error) bool {
	return target == ErrInsufficientPlayers
}

type InvalidScoreError struct {
	Field string
	Value string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid score %q for %s: scores must be non-negative integers", e.Value, e.Field)
}

func (e *InvalidScoreError) Is(target error) bool {
	return target == ErrInvalidScore
}

// IsValidation reports whether err is a caller mistake that left no state behind.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrDuplicateName, ErrInsufficientPlayers, ErrInvalidScore, ErrInvalidName, ErrInvalidFormat,
		ErrInvalidAvailability, ErrSamePlayer, ErrSideMismatch, ErrAmbiguousSlot,
		ErrInvalidFieldCount, ErrInvalidImport, ErrInvalidTier,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
