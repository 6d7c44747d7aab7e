package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/mattn/go-sqlite3"
)

// Wrap tags a driver error with the matching domain error while keeping the
// original in the chain, so errors.Is(err, sql.ErrNoRows) still holds.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", club.ErrNotFound, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %w", club.ErrDuplicateName, err)
	}
	return fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
}
