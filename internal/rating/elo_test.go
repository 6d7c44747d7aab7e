package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpected(t *testing.T) {
	assert.InDelta(t, 0.5, Expected(1500, 1500), 1e-9)
	assert.InDelta(t, 1.0/11.0, Expected(1400, 1800), 1e-9)
	assert.InDelta(t, 1.0, Expected(1700, 1500)+Expected(1500, 1700), 1e-9)
}

func TestKFactor(t *testing.T) {
	assert.Equal(t, 40.0, KFactor(0))
	assert.Equal(t, 40.0, KFactor(29))
	assert.Equal(t, 20.0, KFactor(30))
	assert.Equal(t, 20.0, KFactor(120))
}

func TestUpdate_WinnerGainsLoserDrops(t *testing.T) {
	testCases := []struct {
		name string
		a, b Standing
	}{
		{name: "equal ratings", a: NewStanding(1500, 0), b: NewStanding(1500, 0)},
		{name: "underdog wins", a: NewStanding(1300, 5), b: NewStanding(1700, 40)},
		{name: "favourite wins", a: NewStanding(1800, 50), b: NewStanding(1200, 3)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newA, newB := Update(tc.a, tc.b, AWins)
			assert.Greater(t, newA.Rating, tc.a.Rating)
			assert.Less(t, newB.Rating, tc.b.Rating)

			newA, newB = Update(tc.a, tc.b, BWins)
			assert.Less(t, newA.Rating, tc.a.Rating)
			assert.Greater(t, newB.Rating, tc.b.Rating)
		})
	}
}

func TestUpdate_EqualRatingsWin(t *testing.T) {
	newA, newB := Update(NewStanding(1500, 0), NewStanding(1500, 0), AWins)

	assert.InDelta(t, 1520, newA.Rating, 1e-9)
	assert.InDelta(t, 1480, newB.Rating, 1e-9)
}

func TestUpdate_ZeroSumOnlyWithSharedK(t *testing.T) {
	a := NewStanding(1550, 10)
	b := NewStanding(1450, 12)
	newA, newB := Update(a, b, AWins)
	assert.InDelta(t, 0, (newA.Rating-a.Rating)+(newB.Rating-b.Rating), 1e-9)

	veteran := NewStanding(1550, 45)
	newVet, newB := Update(veteran, b, AWins)
	deltaVet := newVet.Rating - veteran.Rating
	deltaB := newB.Rating - b.Rating
	assert.NotEqual(t, 0.0, deltaVet+deltaB)
	// Both moves are the same fraction of their own K.
	assert.InDelta(t, deltaVet/KFactor(45), -deltaB/KFactor(12), 1e-9)
}

func TestUpdate_DrawBetweenEquals(t *testing.T) {
	a := NewStanding(1500, 3)
	b := NewStanding(1500, 7)

	newA, newB := Update(a, b, Draw)
	assert.Equal(t, a.Rating, newA.Rating)
	assert.Equal(t, b.Rating, newB.Rating)
}

func TestUpdate_DrawFavoursWeakerSide(t *testing.T) {
	newA, newB := Update(NewStanding(1300, 0), NewStanding(1700, 0), Draw)
	assert.Greater(t, newA.Rating, 1300.0)
	assert.Less(t, newB.Rating, 1700.0)
}

func TestUpdate_CountAndTierMoveWithRating(t *testing.T) {
	a := NewStanding(1590, 29)
	b := NewStanding(1405, 30)

	newA, newB := Update(a, b, AWins)

	assert.Equal(t, 30, newA.MatchesPlayed)
	assert.Equal(t, 31, newB.MatchesPlayed)
	assert.Equal(t, Classify(newA.Rating), newA.Tier)
	assert.Equal(t, Classify(newB.Rating), newB.Tier)
	assert.Equal(t, Advanced, newA.Tier)
	assert.Equal(t, Beginner, newB.Tier)
}

func TestOutcomeFromScores(t *testing.T) {
	assert.Equal(t, AWins, OutcomeFromScores(21, 15))
	assert.Equal(t, BWins, OutcomeFromScores(18, 21))
	assert.Equal(t, Draw, OutcomeFromScores(0, 0))
}
