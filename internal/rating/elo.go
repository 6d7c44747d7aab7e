// Package rating holds the pairwise Elo rule and the tier bands derived from it.
// Nothing in here touches the store.
package rating

import "math"

const (
	DefaultRating = 1500.0

	provisionalMatches = 30
	provisionalK       = 40.0
	establishedK       = 20.0
)

type Outcome int

const (
	Draw Outcome = iota
	AWins
	BWins
)

func (o Outcome) String() string {
	switch o {
	case AWins:
		return "a_wins"
	case BWins:
		return "b_wins"
	default:
		return "draw"
	}
}

// Standing is the part of a player the rating rule reads and writes.
type Standing struct {
	Rating        float64
	MatchesPlayed int
	Tier          Tier
}

func NewStanding(r float64, matches int) Standing {
	return Standing{Rating: r, MatchesPlayed: matches, Tier: Classify(r)}
}

// Expected is the win probability of a rx player against a ry player.
func Expected(rx, ry float64) float64 {
	return 1 / (1 + math.Pow(10, (ry-rx)/400))
}

func KFactor(matchesPlayed int) float64 {
	if matchesPlayed < provisionalMatches {
		return provisionalK
	}
	return establishedK
}

func OutcomeFromScores(scoreA, scoreB int) Outcome {
	switch {
	case scoreA > scoreB:
		return AWins
	case scoreB > scoreA:
		return BWins
	default:
		return Draw
	}
}

func actualScores(o Outcome) (float64, float64) {
	switch o {
	case AWins:
		return 1, 0
	case BWins:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// Update applies one match to both sides. Each side moves by its own K
// against its own expectation, gains one match and gets its tier refreshed.
func Update(a, b Standing, o Outcome) (Standing, Standing) {
	actualA, actualB := actualScores(o)

	newA := a.Rating + KFactor(a.MatchesPlayed)*(actualA-Expected(a.Rating, b.Rating))
	newB := b.Rating + KFactor(b.MatchesPlayed)*(actualB-Expected(b.Rating, a.Rating))

	return NewStanding(newA, a.MatchesPlayed+1), NewStanding(newB, b.MatchesPlayed+1)
}
