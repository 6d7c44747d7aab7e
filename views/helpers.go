package views

import (
	"fmt"

	"github.com/AdamBeresnev/club-ladder/internal/rating"
)

// Ratings are stored unrounded but shown as whole points.
func formatRating(r float64) string {
	return fmt.Sprintf("%.0f", r)
}

func tierClass(t rating.Tier) string {
	switch t {
	case rating.Advanced:
		return "tier-advanced"
	case rating.Intermediate:
		return "tier-intermediate"
	default:
		return "tier-beginner"
	}
}
