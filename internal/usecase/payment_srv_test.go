package usecase

import (
	"context"
	"errors"
	"testing"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/internal/dto/request"
	"property-booking/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

type paymentFixture struct {
	m       *mocks
	gw      *mockGateway
	svc     PaymentService
	userID  uuid.UUID
	booking *entity.BookingDetail
	ctx     context.Context
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	m, repo := newMocks()
	gw := new(mockGateway)
	userID := uuid.New()
	contractor := &entity.Contractor{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, UserID: userID}
	booking := confirmedBooking(contractor.ID, uuid.New())
	ctx := context.Background()

	m.booking.On("FindDetailByID", ctx, booking.ID).Return(booking, nil)
	m.contractor.On("FindByUserID", ctx, userID).Return(contractor, nil)

	return &paymentFixture{
		m:       m,
		gw:      gw,
		svc:     NewPaymentService(repo, gw, "EUR", zap.NewNop()),
		userID:  userID,
		booking: booking,
		ctx:     ctx,
	}
}

func TestPaymentService_CreatesInvoiceAndCheckout(t *testing.T) {
	f := newPaymentFixture(t)

	f.m.invoice.On("FindLatestByBookingID", f.ctx, f.booking.ID).Return(nil, nil)
	f.m.invoice.On("Create", f.ctx, mock.MatchedBy(func(inv *entity.Invoice) bool {
		return inv.Amount == 300 && inv.Currency == "EUR" && inv.Status == entity.InvoiceStatusUnpaid
	})).Return(nil)
	f.gw.On("CreateCheckout", f.ctx, mock.MatchedBy(func(req payment.CheckoutRequest) bool {
		return req.AmountCents == 30000 && req.BookingID == f.booking.ID.String()
	})).Return(&payment.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"}, nil)
	f.m.invoice.On("SetCheckout", f.ctx, mock.Anything, "https://pay.example.com/cs_1", "cs_1").Return(nil)

	resp, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.Amount)
	require.NotNil(t, resp.PaymentURL)
	assert.Equal(t, "https://pay.example.com/cs_1", *resp.PaymentURL)
	f.gw.AssertExpectations(t)
}

func TestPaymentService_ReusesUnpaidInvoiceWithoutURL(t *testing.T) {
	f := newPaymentFixture(t)

	existing := &entity.Invoice{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		BookingID:    f.booking.ID,
		Amount:       300,
		Currency:     "EUR",
		Status:       entity.InvoiceStatusUnpaid,
	}
	f.m.invoice.On("FindLatestByBookingID", f.ctx, f.booking.ID).Return(existing, nil)
	f.gw.On("CreateCheckout", f.ctx, mock.Anything).Return(&payment.CheckoutSession{ID: "cs_2", URL: "https://pay.example.com/cs_2"}, nil)
	f.m.invoice.On("SetCheckout", f.ctx, existing.ID, "https://pay.example.com/cs_2", "cs_2").Return(nil)

	resp, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, existing.ID.String(), resp.ID)
	f.m.invoice.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_OpenCheckoutReturnsExistingInvoice(t *testing.T) {
	f := newPaymentFixture(t)

	invoiceID := uuid.New()
	f.booking.Invoice = &entity.InvoiceSnapshot{
		ID:         invoiceID,
		Status:     entity.InvoiceStatusUnpaid,
		PaymentURL: strPtr("https://pay.example.com/cs_1"),
	}
	f.m.invoice.On("FindByID", f.ctx, invoiceID).Return(&entity.Invoice{
		BaseNoDelete: entity.BaseNoDelete{ID: invoiceID},
		PaymentURL:   strPtr("https://pay.example.com/cs_1"),
	}, nil)

	resp, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, invoiceID.String(), resp.ID)
	f.gw.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
}

func TestPaymentService_Rejects(t *testing.T) {
	t.Run("paid invoice", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.booking.Invoice = &entity.InvoiceSnapshot{ID: uuid.New(), Status: entity.InvoiceStatusPaid}

		_, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already paid")
	})

	t.Run("pending booking", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.booking.Status = entity.BookingStatusPending

		_, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot pay booking with status pending")
	})

	t.Run("someone else's booking", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.booking.ContractorID = uuid.New()

		_, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
	})

	t.Run("gateway failure", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.m.invoice.On("FindLatestByBookingID", f.ctx, f.booking.ID).Return(nil, nil)
		f.m.invoice.On("Create", f.ctx, mock.Anything).Return(nil)
		f.gw.On("CreateCheckout", f.ctx, mock.Anything).Return(nil, errors.New("create checkout: http 502"))

		_, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())
		require.Error(t, err)
		f.m.invoice.AssertNotCalled(t, "SetCheckout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_ConcurrentCreateReusesOpenInvoice(t *testing.T) {
	f := newPaymentFixture(t)

	winner := &entity.Invoice{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		BookingID:    f.booking.ID,
		Amount:       300,
		Status:       entity.InvoiceStatusUnpaid,
		PaymentURL:   strPtr("https://pay.example.com/cs_winner"),
		ExternalID:   strPtr("cs_winner"),
	}
	f.m.invoice.On("FindLatestByBookingID", f.ctx, f.booking.ID).Return(nil, nil).Once()
	f.m.invoice.On("Create", f.ctx, mock.Anything).Return(repository.ErrOpenInvoiceExists)
	f.m.invoice.On("FindLatestByBookingID", f.ctx, f.booking.ID).Return(winner, nil).Once()

	resp, err := f.svc.InitiatePayment(f.ctx, f.userID.String(), f.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, winner.ID.String(), resp.ID)
	f.gw.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
	f.m.invoice.AssertNotCalled(t, "SetCheckout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func webhookInvoice(status entity.InvoiceStatus) *entity.Invoice {
	return &entity.Invoice{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		BookingID:    uuid.New(),
		Status:       status,
		ExternalID:   strPtr("cs_real_123"),
	}
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	m, repo := newMocks()
	svc := NewPaymentService(repo, new(mockGateway), "", zap.NewNop())
	ctx := context.Background()

	invoice := webhookInvoice(entity.InvoiceStatusUnpaid)
	m.invoice.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	m.invoice.On("Settle", ctx, invoice.ID, invoice.BookingID).Return(true, nil).Once()

	err := svc.HandleWebhook(ctx, &request.PaymentWebhookRequest{InvoiceID: invoice.ID.String(), SessionID: "cs_real_123", Status: "paid"})
	require.NoError(t, err)

	// other events are acknowledged without side effects
	err = svc.HandleWebhook(ctx, &request.PaymentWebhookRequest{InvoiceID: invoice.ID.String(), SessionID: "cs_real_123", Status: "expired"})
	require.NoError(t, err)

	m.invoice.AssertNumberOfCalls(t, "Settle", 1)
}

func TestPaymentService_HandleWebhookRejectsForeignSession(t *testing.T) {
	tests := []struct {
		name      string
		stored    *string
		sessionID string
	}{
		{"forged session", strPtr("cs_real_123"), "forged"},
		{"missing session", strPtr("cs_real_123"), ""},
		{"no checkout yet", nil, "cs_real_123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newMocks()
			svc := NewPaymentService(repo, new(mockGateway), "", zap.NewNop())
			ctx := context.Background()

			invoice := webhookInvoice(entity.InvoiceStatusUnpaid)
			invoice.ExternalID = tt.stored
			m.invoice.On("FindByID", ctx, invoice.ID).Return(invoice, nil).Maybe()

			err := svc.HandleWebhook(ctx, &request.PaymentWebhookRequest{InvoiceID: invoice.ID.String(), SessionID: tt.sessionID, Status: "paid"})

			require.Error(t, err)
			m.invoice.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
			m.booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentService_HandleWebhookRetryCompletesSettlement(t *testing.T) {
	m, repo := newMocks()
	svc := NewPaymentService(repo, new(mockGateway), "", zap.NewNop())
	ctx := context.Background()

	invoice := webhookInvoice(entity.InvoiceStatusUnpaid)
	m.invoice.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	m.invoice.On("Settle", ctx, invoice.ID, invoice.BookingID).Return(false, errors.New("mark booking paid: conn reset")).Once()
	m.invoice.On("Settle", ctx, invoice.ID, invoice.BookingID).Return(true, nil).Once()

	req := &request.PaymentWebhookRequest{InvoiceID: invoice.ID.String(), SessionID: "cs_real_123", Status: "paid"}
	require.Error(t, svc.HandleWebhook(ctx, req))
	require.NoError(t, svc.HandleWebhook(ctx, req))

	m.invoice.AssertNumberOfCalls(t, "Settle", 2)
}

func TestPaymentService_HandleWebhookAlreadyPaidStillSettles(t *testing.T) {
	m, repo := newMocks()
	svc := NewPaymentService(repo, new(mockGateway), "", zap.NewNop())
	ctx := context.Background()

	invoice := webhookInvoice(entity.InvoiceStatusPaid)
	m.invoice.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	m.invoice.On("Settle", ctx, invoice.ID, invoice.BookingID).Return(true, nil).Once()

	err := svc.HandleWebhook(ctx, &request.PaymentWebhookRequest{InvoiceID: invoice.ID.String(), SessionID: "cs_real_123", Status: "paid"})

	require.NoError(t, err)
	m.invoice.AssertExpectations(t)
}

func TestPaymentService_HandleWebhookCancelledBookingStaysCancelled(t *testing.T) {
	m, repo := newMocks()
	svc := NewPaymentService(repo, new(mockGateway), "", zap.NewNop())
	ctx := context.Background()

	invoice := webhookInvoice(entity.InvoiceStatusUnpaid)
	m.invoice.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	// the booking was cancelled after checkout, so Settle leaves it alone
	m.invoice.On("Settle", ctx, invoice.ID, invoice.BookingID).Return(false, nil).Once()

	err := svc.HandleWebhook(ctx, &request.PaymentWebhookRequest{InvoiceID: invoice.ID.String(), SessionID: "cs_real_123", Status: "paid"})

	require.NoError(t, err)
	m.booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhookUnknownInvoice(t *testing.T) {
	m, repo := newMocks()
	svc := NewPaymentService(repo, new(mockGateway), "", zap.NewNop())
	ctx := context.Background()

	id := uuid.New()
	m.invoice.On("FindByID", ctx, id).Return(nil, nil)

	err := svc.HandleWebhook(ctx, &request.PaymentWebhookRequest{InvoiceID: id.String(), SessionID: "cs_1", Status: "paid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
