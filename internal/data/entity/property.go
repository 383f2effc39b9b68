package entity

import "github.com/google/uuid"

type Property struct {
	Base
	LandlordID  uuid.UUID `db:"landlord_id"`
	Title       string    `db:"title"`
	Address     string    `db:"address"`
	Description *string   `db:"description"`
	Price       float64   `db:"price"` // per day
}
