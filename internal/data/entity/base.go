package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by soft-deletable rows.
type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is for append-only rows such as sessions.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewBaseNoDelete(now time.Time) BaseNoDelete {
	return BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewBaseSimple(now time.Time) BaseSimple {
	return BaseSimple{ID: uuid.New(), CreatedAt: now}
}

// Deleted reports whether the row has been soft-deleted.
func (b Base) Deleted() bool {
	return b.DeletedAt != nil
}
