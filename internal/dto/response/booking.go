package response

import (
	"time"

	"property-booking/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	PropertyID   string               `json:"property_id"`
	ContractorID string               `json:"contractor_id"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Status       entity.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

type InvoiceResponse struct {
	ID         string               `json:"id"`
	BookingID  string               `json:"booking_id"`
	Amount     float64              `json:"amount"`
	Currency   string               `json:"currency"`
	Status     entity.InvoiceStatus `json:"status"`
	PaymentURL *string              `json:"payment_url,omitempty"`
	PaidAt     *time.Time           `json:"paid_at,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type ContractorResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		PropertyID:   b.PropertyID.String(),
		ContractorID: b.ContractorID.String(),
		StartDate:    b.StartDate.Format("2006-01-02"),
		EndDate:      b.EndDate.Format("2006-01-02"),
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
}

func InvoiceToResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         inv.ID.String(),
		BookingID:  inv.BookingID.String(),
		Amount:     inv.Amount,
		Currency:   inv.Currency,
		Status:     inv.Status,
		PaymentURL: inv.PaymentURL,
		PaidAt:     inv.PaidAt,
		CreatedAt:  inv.CreatedAt,
	}
}

func ContractorToResponse(c *entity.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		FullName:  c.FullName,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: c.CreatedAt,
	}
}
