package service

import (
	"fmt"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/random"
	"github.com/google/uuid"
)

// Group is one match worth of players on a field.
type Group struct {
	FieldSlot int
	SideA     []club.Player
	SideB     []club.Player
}

type Lineup struct {
	Format     club.Format
	FieldCount int
	Groups     []Group
	Benched    []club.Player
}

// PlanLineup partitions a pool into matches without touching the store.
//
// Duplicate players are dropped, the first fieldCount matches worth of players
// are shuffled into consecutive groups and everyone else sits out. A short
// trailing group is benched rather than sent onto a field.
func PlanLineup(pool []club.Player, format club.Format, fieldCount int, rnd random.Random) (*Lineup, error) {
	if format != club.Singles && format != club.Doubles {
		return nil, fmt.Errorf("%w: %q", club.ErrInvalidFormat, format)
	}
	if fieldCount < 1 {
		return nil, fmt.Errorf("%w: got %d", club.ErrInvalidFieldCount, fieldCount)
	}

	players := dedupePlayers(pool)
	perMatch := format.PlayersPerMatch()
	if len(players) < perMatch {
		return nil, &club.InsufficientPlayersError{Format: format, Have: len(players), Need: perMatch}
	}

	lineup := &Lineup{Format: format, FieldCount: fieldCount}

	capacity := fieldCount * perMatch
	if len(players) > capacity {
		lineup.Benched = append(lineup.Benched, players[capacity:]...)
		players = players[:capacity]
	}

	rnd.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	full := len(players) / perMatch * perMatch
	lineup.Benched = append(lineup.Benched, players[full:]...)

	perSide := format.PlayersPerSide()
	for i := 0; i*perMatch < full; i++ {
		group := players[i*perMatch : (i+1)*perMatch]
		lineup.Groups = append(lineup.Groups, Group{
			FieldSlot: i%fieldCount + 1,
			SideA:     group[:perSide],
			SideB:     group[perSide:],
		})
	}

	return lineup, nil
}

func dedupePlayers(pool []club.Player) []club.Player {
	seen := make(map[uuid.UUID]bool, len(pool))
	players := make([]club.Player, 0, len(pool))
	for _, p := range pool {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		players = append(players, p)
	}
	return players
}
