package club

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Session struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Format     Format    `db:"format" json:"format"`
	Date       string    `db:"date" json:"date"`
	FieldCount int       `db:"field_count" json:"field_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func SessionName(at time.Time) string {
	return "Session on " + at.Format("2006-01-02 15:04:05")
}
