package club

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/google/uuid"
)

type Player struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	Rating        float64      `db:"rating" json:"rating"`
	MatchesPlayed int          `db:"matches_played" json:"matches_played"`
	Tier          rating.Tier  `db:"tier" json:"tier"`
	Availability  Availability `db:"availability" json:"availability"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

func (p *Player) Standing() rating.Standing {
	return rating.Standing{Rating: p.Rating, MatchesPlayed: p.MatchesPlayed, Tier: p.Tier}
}

// Availability is the set of weekdays a player can be drafted on.
// An empty set means no restriction.
type Availability []time.Weekday

const unrestricted = "None"

func ParseAvailability(s string) (Availability, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "any", "unrestricted":
		return nil, nil
	}

	var days Availability
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		day, ok := parseWeekday(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAvailability, strings.TrimSpace(part))
		}
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	slices.Sort(days)
	return days, nil
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

func (a Availability) Unrestricted() bool {
	return len(a) == 0
}

func (a Availability) Includes(day time.Weekday) bool {
	return a.Unrestricted() || slices.Contains(a, day)
}

func (a Availability) String() string {
	if a.Unrestricted() {
		return unrestricted
	}
	names := make([]string, len(a))
	for i, d := range a {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

func (a Availability) Value() (driver.Value, error) {
	if a.Unrestricted() {
		return nil, nil
	}
	return a.String(), nil
}

func (a Availability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Availability) UnmarshalText(b []byte) error {
	parsed, err := ParseAvailability(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a *Availability) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Availability", src)
	}

	parsed, err := ParseAvailability(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
