package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/internal/dto/request"
	"property-booking/internal/dto/response"
	"property-booking/internal/payment"
	"property-booking/internal/presenter"
	"property-booking/pkg/metrics"
	"property-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "USD"

type PaymentService interface {
	// InitiatePayment returns the invoice the contractor should pay, creating
	// it and its checkout session when needed.
	InitiatePayment(ctx context.Context, userID, bookingID string) (*response.InvoiceResponse, error)
	// HandleWebhook applies a provider notification. The caller must have
	// authenticated the request.
	HandleWebhook(ctx context.Context, req *request.PaymentWebhookRequest) error
}

type paymentService struct {
	repo     *repository.Repository
	gateway  payment.Gateway
	currency string
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gateway payment.Gateway, currency string, log *zap.Logger) PaymentService {
	if currency == "" {
		currency = defaultCurrency
	}
	return &paymentService{
		repo:     repo,
		gateway:  gateway,
		currency: currency,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, userID, bookingID string) (*response.InvoiceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindDetailByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	contractor, err := s.repo.Contractor.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to find contractor profile", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find contractor profile: %w", err)
	}
	if contractor == nil || contractor.ID != booking.ContractorID {
		return nil, fmt.Errorf("forbidden: booking %s does not belong to you", bookingID)
	}

	// The row's payment action decides what paying means here; its
	// create-payment callback runs the checkout.
	var (
		invoice     *response.InvoiceResponse
		checkoutErr error
	)
	action := presenter.ResolvePayment(booking, func(string) {
		invoice, checkoutErr = s.checkout(ctx, booking)
	})

	switch action.Kind {
	case presenter.ActionPaymentDone:
		return nil, fmt.Errorf("cannot pay booking %s: invoice already paid", bookingID)
	case presenter.ActionOpenCheckout:
		existing, err := s.repo.Invoice.FindByID(ctx, booking.Invoice.ID)
		if err != nil {
			return nil, fmt.Errorf("find invoice %s: %w", booking.Invoice.ID, err)
		}
		if existing == nil {
			return nil, fmt.Errorf("invoice %s not found", booking.Invoice.ID)
		}
		metrics.IncInvoice("reused")
		resp := response.InvoiceToResponse(existing)
		return &resp, nil
	case presenter.ActionCreatePayment:
		action.Invoke()
		return invoice, checkoutErr
	default:
		return nil, fmt.Errorf("cannot pay booking with status %s", booking.Status)
	}
}

// checkout reuses the booking's unpaid invoice or creates one, then attaches
// a fresh checkout session to it.
func (s *paymentService) checkout(ctx context.Context, booking *entity.BookingDetail) (*response.InvoiceResponse, error) {
	days := presenter.DayCount(booking.StartDate, booking.EndDate)
	if days <= 0 {
		return nil, fmt.Errorf("invalid booking dates: %d days", days)
	}

	invoice, err := s.repo.Invoice.FindLatestByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find invoice for booking %s: %w", booking.ID, err)
	}

	if invoice == nil || invoice.Status != entity.InvoiceStatusUnpaid {
		invoice, err = s.openInvoice(ctx, booking, days)
		if err != nil {
			return nil, err
		}
		if invoice.PaymentURL != nil && *invoice.PaymentURL != "" {
			resp := response.InvoiceToResponse(invoice)
			return &resp, nil
		}
	} else {
		metrics.IncInvoice("reused")
	}

	session, err := s.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		InvoiceID:   invoice.ID.String(),
		BookingID:   booking.ID.String(),
		AmountCents: payment.ToCents(invoice.Amount),
		Currency:    invoice.Currency,
		Description: fmt.Sprintf("%s, %d night(s)", booking.Property.Title, days),
	})
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("invoice_id", invoice.ID.String()),
		)
		return nil, fmt.Errorf("create checkout for invoice %s: %w", invoice.ID, err)
	}

	if err := s.repo.Invoice.SetCheckout(ctx, invoice.ID, session.URL, session.ID); err != nil {
		s.log.Error("Failed to store checkout session", zap.Error(err), zap.String("invoice_id", invoice.ID.String()))
		return nil, fmt.Errorf("store checkout for invoice %s: %w", invoice.ID, err)
	}
	invoice.PaymentURL = &session.URL
	invoice.ExternalID = &session.ID

	s.log.Info("Checkout session created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.Float64("amount", invoice.Amount),
	)

	resp := response.InvoiceToResponse(invoice)
	return &resp, nil
}

// openInvoice creates the booking's unpaid invoice. When a concurrent request
// created one first, that invoice is returned instead.
func (s *paymentService) openInvoice(ctx context.Context, booking *entity.BookingDetail, days int) (*entity.Invoice, error) {
	invoice := &entity.Invoice{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		BookingID:    booking.ID,
		Amount:       presenter.RoundCents(booking.Property.Price * float64(days)),
		Currency:     s.currency,
		Status:       entity.InvoiceStatusUnpaid,
	}

	err := s.repo.Invoice.Create(ctx, invoice)
	if errors.Is(err, repository.ErrOpenInvoiceExists) {
		existing, findErr := s.repo.Invoice.FindLatestByBookingID(ctx, booking.ID)
		if findErr != nil {
			return nil, fmt.Errorf("find invoice for booking %s: %w", booking.ID, findErr)
		}
		if existing == nil || existing.Status != entity.InvoiceStatusUnpaid {
			return nil, fmt.Errorf("create invoice: %w", err)
		}
		metrics.IncInvoice("reused")
		return existing, nil
	}
	if err != nil {
		s.log.Error("Failed to create invoice", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	metrics.IncInvoice("created")
	return invoice, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, req *request.PaymentWebhookRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment webhook validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return fmt.Errorf("invalid invoice ID format %s: %w", req.InvoiceID, err)
	}

	invoice, err := s.repo.Invoice.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("find invoice %s: %w", req.InvoiceID, err)
	}
	if invoice == nil {
		return fmt.Errorf("invoice %s not found", req.InvoiceID)
	}

	if invoice.ExternalID == nil || *invoice.ExternalID != req.SessionID {
		s.log.Warn("Payment webhook session mismatch",
			zap.String("invoice_id", req.InvoiceID),
			zap.String("session_id", req.SessionID),
		)
		return fmt.Errorf("forbidden: session %s does not belong to invoice %s", req.SessionID, req.InvoiceID)
	}

	if req.Status != string(entity.InvoiceStatusPaid) {
		s.log.Info("Ignoring payment event",
			zap.String("invoice_id", req.InvoiceID),
			zap.String("status", req.Status),
		)
		return nil
	}

	// Settle is idempotent, so a retry after a partial failure completes it.
	moved, err := s.repo.Invoice.Settle(ctx, invoice.ID, invoice.BookingID)
	if err != nil {
		s.log.Error("Failed to settle invoice", zap.Error(err), zap.String("invoice_id", req.InvoiceID))
		return fmt.Errorf("settle invoice %s: %w", req.InvoiceID, err)
	}

	if invoice.Status == entity.InvoiceStatusPaid {
		s.log.Info("Duplicate payment event", zap.String("invoice_id", req.InvoiceID), zap.Bool("booking_moved", moved))
		return nil
	}

	metrics.IncInvoice("paid")
	if !moved {
		s.log.Warn("Payment received for booking not awaiting payment",
			zap.String("invoice_id", req.InvoiceID),
			zap.String("booking_id", invoice.BookingID.String()),
		)
		return nil
	}

	metrics.IncBookingStatus(string(entity.BookingStatusPaid))
	s.log.Info("Invoice paid",
		zap.String("invoice_id", req.InvoiceID),
		zap.String("booking_id", invoice.BookingID.String()),
	)

	return nil
}
