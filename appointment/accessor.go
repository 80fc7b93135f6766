package appointment

import (
	"database/sql"
	"time"
)

// Accessor reads and writes appointments. Dates coming back from Postgres are
// re-anchored to midnight in loc.
type Accessor struct {
	db  *sql.DB
	loc *time.Location
}

func NewAccessor(db *sql.DB, loc *time.Location) *Accessor {
	if loc == nil {
		loc = time.UTC
	}
	return &Accessor{
		db:  db,
		loc: loc,
	}
}
