package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusPaid      BookingStatus = "paid"
)

type Booking struct {
	BaseNoDelete
	PropertyID   uuid.UUID     `db:"property_id"`
	ContractorID uuid.UUID     `db:"contractor_id"`
	StartDate    time.Time     `db:"start_date"`
	EndDate      time.Time     `db:"end_date"`
	Status       BookingStatus `db:"status"`
}

// BookingDetail is a booking row joined with the property, contractor and
// invoice snapshots it is displayed with.
type BookingDetail struct {
	Booking
	Property   PropertySnapshot
	Contractor *ContractorSnapshot
	Invoice    *InvoiceSnapshot
}

type PropertySnapshot struct {
	Title      string
	Address    string
	Price      float64
	LandlordID uuid.UUID
}

type ContractorSnapshot struct {
	FullName string
}

type InvoiceSnapshot struct {
	ID         uuid.UUID
	Amount     float64
	Status     InvoiceStatus
	PaymentURL *string
}
