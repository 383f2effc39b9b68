package entity

import "github.com/google/uuid"

// Contractor is the renter profile attached to a contractor user.
type Contractor struct {
	BaseNoDelete
	UserID   uuid.UUID `db:"user_id"`
	FullName string    `db:"full_name"`
	Phone    *string   `db:"phone"`
	Company  *string   `db:"company"`
}
