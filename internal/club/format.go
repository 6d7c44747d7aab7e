package club

import (
	"fmt"
	"strings"
)

type Format string

const (
	Singles Format = "singles"
	Doubles Format = "doubles"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "singles", "1v1":
		return Singles, nil
	case "doubles", "2v2":
		return Doubles, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func (f Format) PlayersPerSide() int {
	if f == Doubles {
		return 2
	}
	return 1
}

func (f Format) PlayersPerMatch() int {
	return 2 * f.PlayersPerSide()
}
