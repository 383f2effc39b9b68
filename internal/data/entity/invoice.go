package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

type Invoice struct {
	BaseNoDelete
	BookingID  uuid.UUID     `db:"booking_id"`
	Amount     float64       `db:"amount"`
	Currency   string        `db:"currency"`
	Status     InvoiceStatus `db:"status"`
	PaymentURL *string       `db:"payment_url"`
	ExternalID *string       `db:"external_id"`
	PaidAt     *time.Time    `db:"paid_at"`
}
