package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		rating   float64
		expected Tier
	}{
		{rating: math.Inf(-1), expected: Beginner},
		{rating: 0, expected: Beginner},
		{rating: 1399.99, expected: Beginner},
		{rating: 1400.00, expected: Intermediate},
		{rating: 1500, expected: Intermediate},
		{rating: 1599.99, expected: Intermediate},
		{rating: 1600.00, expected: Advanced},
		{rating: 2400, expected: Advanced},
		{rating: math.Inf(1), expected: Advanced},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Classify(tc.rating), "rating %v", tc.rating)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[Tier]int{Beginner: 0, Intermediate: 1, Advanced: 2}

	prev := Classify(1000)
	for r := 1000.0; r <= 2000; r += 0.5 {
		cur := Classify(r)
		assert.GreaterOrEqual(t, rank[cur], rank[prev], "tier dropped at %v", r)
		prev = cur
	}
}

func TestSeedRatingMatchesTier(t *testing.T) {
	for _, tier := range []Tier{Beginner, Intermediate, Advanced} {
		assert.Equal(t, tier, Classify(tier.SeedRating()))
	}
	assert.Equal(t, 1300.0, Beginner.SeedRating())
	assert.Equal(t, 1500.0, Intermediate.SeedRating())
	assert.Equal(t, 1700.0, Advanced.SeedRating())
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" advanced ")
	require.NoError(t, err)
	assert.Equal(t, Advanced, tier)

	tier, err = ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, Beginner, tier)

	_, err = ParseTier("pro")
	assert.ErrorIs(t, err, ErrUnknownTier)
}
