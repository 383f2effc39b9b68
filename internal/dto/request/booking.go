package request

type CreateBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid4"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// PaymentWebhookRequest is the checkout provider's payment notification.
type PaymentWebhookRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required,uuid4"`
	SessionID string `json:"session_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}
