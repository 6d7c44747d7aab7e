package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionData() *service.SessionData {
	ann, ben, cat, dan := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	session := &club.Session{ID: uuid.New(), Name: "Session on 2026-03-02 18:30:00", Format: club.Singles, FieldCount: 2}

	return &service.SessionData{
		Session: session,
		Matches: []club.Match{
			{ID: uuid.New(), FieldSlot: utils.Ptr(2), SideA: []uuid.UUID{cat}, SideB: []uuid.UUID{dan}, Status: club.MatchPending},
			{ID: uuid.New(), FieldSlot: utils.Ptr(1), SideA: []uuid.UUID{ann}, SideB: []uuid.UUID{ben},
				ScoreA: 15, ScoreB: 21, WinnerID: &ben, Status: club.MatchFinished},
		},
		// Dan has been removed since the session was built
		Names: map[uuid.UUID]string{ann: "Ann", ben: "Ben <B>", cat: "Cat"},
	}
}

func TestPrepareSessionSheet(t *testing.T) {
	sheet := PrepareSessionSheet(sessionData())

	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, 1, sheet.Pending)

	assert.Equal(t, 1, sheet.Rows[0].FieldSlot)
	assert.True(t, sheet.Rows[0].Finished)
	assert.Equal(t, "Ben <B>", sheet.Rows[0].Winner)

	assert.Equal(t, 2, sheet.Rows[1].FieldSlot)
	assert.Equal(t, "(removed)", sheet.Rows[1].SideB)
	assert.Empty(t, sheet.Rows[1].Winner)
}

func TestSessionPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SessionPage(PrepareSessionSheet(sessionData())).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "Session on 2026-03-02 18:30:00")
	assert.Contains(t, html, "15 - 21")
	assert.Contains(t, html, "Ben &lt;B&gt;")
	assert.NotContains(t, html, "Ben <B>")
	assert.Contains(t, html, "Pending")
}

func TestLeaderboardPage(t *testing.T) {
	rows := []store.LeaderboardRow{
		{Name: "Ann", Rating: 1612.4, Tier: rating.Advanced, MatchesPlayed: 7},
		{Name: "Ben", Rating: 1388.6, Tier: rating.Beginner, MatchesPlayed: 7},
	}

	var buf bytes.Buffer
	require.NoError(t, LeaderboardPage(rows, nil).Render(context.Background(), &buf))
	html := buf.String()
	assert.Contains(t, html, "<td>1612</td>")
	assert.Contains(t, html, "<td>1389</td>")
	assert.Contains(t, html, `class="tier-advanced"`)

	buf.Reset()
	require.NoError(t, LeaderboardPage(nil, nil).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No players yet.")
}
