package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()
	f.addPlayer(t, "Eve", 1500)

	roster := strings.Join([]string{
		"Name,Skill_Level,Availability",
		`Ann,Advanced,"Monday, Friday"`,
		"Ben,,None",
		",Beginner,",
		"Ann,Beginner,",
		"Cat,Expert,",
		"Dan,Beginner,Funday",
		"Eve,Intermediate,",
		"Fay,intermediate",
	}, "\n")

	result, err := f.imports.ImportCSV(ctx, strings.NewReader(roster))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ann", "Ben", "Fay"}, names(result.Created))

	skipped := make(map[int]string)
	for _, s := range result.Skipped {
		skipped[s.Line] = s.Reason
	}
	assert.Len(t, skipped, 5)
	assert.Equal(t, "empty name", skipped[4])
	assert.Equal(t, "duplicate name in file", skipped[5])
	assert.Contains(t, skipped[6], "unknown tier")
	assert.Contains(t, skipped[7], "invalid availability")
	assert.Equal(t, "player already exists", skipped[8])

	ann := f.player(t, "Ann")
	assert.Equal(t, 1700.0, ann.Rating)
	assert.Equal(t, rating.Advanced, ann.Tier)
	assert.Equal(t, club.Availability{time.Monday, time.Friday}, ann.Availability)

	ben := f.player(t, "Ben")
	assert.Equal(t, rating.Beginner, ben.Tier)
	assert.True(t, ben.Availability.Unrestricted())

	assert.Equal(t, 1500.0, f.player(t, "Fay").Rating)
	// The existing player is left alone
	assert.Equal(t, 1500.0, f.player(t, "Eve").Rating)
}

func TestImportCSV_BadFiles(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	_, err := f.imports.ImportCSV(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, club.ErrInvalidImport)

	_, err = f.imports.ImportCSV(ctx, strings.NewReader("player,tier\nAnn,Beginner\n"))
	assert.ErrorIs(t, err, club.ErrInvalidImport)

	_, err = f.imports.ImportCSV(ctx, strings.NewReader("name\n\"Ann\n"))
	assert.ErrorIs(t, err, club.ErrInvalidImport)

	players, err := f.players.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
}
