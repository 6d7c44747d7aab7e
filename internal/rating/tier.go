package rating

import (
	"errors"
	"fmt"
	"strings"
)

type Tier string

const (
	Beginner     Tier = "Beginner"
	Intermediate Tier = "Intermediate"
	Advanced     Tier = "Advanced"
)

const (
	intermediateFloor = 1400.0
	advancedFloor     = 1600.0
)

var ErrUnknownTier = errors.New("unknown tier")

func Classify(r float64) Tier {
	switch {
	case r < intermediateFloor:
		return Beginner
	case r < advancedFloor:
		return Intermediate
	default:
		return Advanced
	}
}

// SeedRating is the starting rating for a player onboarded by tier alone.
func (t Tier) SeedRating() float64 {
	switch t {
	case Intermediate:
		return 1500
	case Advanced:
		return 1700
	default:
		return 1300
	}
}

func (t Tier) String() string {
	return string(t)
}

// ParseTier is case-insensitive. An empty string is Beginner.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}
