package usecase

import (
	"context"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}
func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockContractorRepo struct{ mock.Mock }

func (m *mockContractorRepo) Create(ctx context.Context, c *entity.Contractor) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockContractorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Contractor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contractor), args.Error(1)
}
func (m *mockContractorRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Contractor, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entity.Contractor), args.Error(1)
}
func (m *mockContractorRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockPropertyRepo struct{ mock.Mock }

func (m *mockPropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockPropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}
func (m *mockPropertyRepo) FindAll(ctx context.Context, landlordID *uuid.UUID, limit, offset int) ([]*entity.Property, error) {
	args := m.Called(ctx, landlordID, limit, offset)
	return args.Get(0).([]*entity.Property), args.Error(1)
}
func (m *mockPropertyRepo) CountAll(ctx context.Context, landlordID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookingRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingDetail), args.Error(1)
}
func (m *mockBookingRepo) FindDetails(ctx context.Context, filter repository.BookingFilter) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockInvoiceRepo struct{ mock.Mock }

func (m *mockInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}
func (m *mockInvoiceRepo) FindLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}
func (m *mockInvoiceRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entity.Invoice), args.Error(1)
}
func (m *mockInvoiceRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockInvoiceRepo) SetCheckout(ctx context.Context, id uuid.UUID, url, externalID string) error {
	return m.Called(ctx, id, url, externalID).Error(0)
}
func (m *mockInvoiceRepo) Settle(ctx context.Context, invoiceID, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, invoiceID, bookingID)
	return args.Bool(0), args.Error(1)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

type mockForwarder struct{ mock.Mock }

func (m *mockForwarder) Forward(ctx context.Context, url string, payload any) error {
	return m.Called(ctx, url, payload).Error(0)
}

type mocks struct {
	user       *mockUserRepo
	session    *mockSessionRepo
	contractor *mockContractorRepo
	property   *mockPropertyRepo
	booking    *mockBookingRepo
	invoice    *mockInvoiceRepo
}

func newMocks() (*mocks, *repository.Repository) {
	m := &mocks{
		user:       new(mockUserRepo),
		session:    new(mockSessionRepo),
		contractor: new(mockContractorRepo),
		property:   new(mockPropertyRepo),
		booking:    new(mockBookingRepo),
		invoice:    new(mockInvoiceRepo),
	}
	return m, &repository.Repository{
		User:       m.user,
		Session:    m.session,
		Contractor: m.contractor,
		Property:   m.property,
		Booking:    m.booking,
		Invoice:    m.invoice,
	}
}
