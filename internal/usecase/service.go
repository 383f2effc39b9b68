package usecase

import (
	"context"

	"property-booking/internal/data/repository"
	"property-booking/internal/payment"
	"property-booking/internal/relay"
	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

// Forwarder posts a JSON payload to an external webhook.
type Forwarder interface {
	Forward(ctx context.Context, url string, payload any) error
}

type Service struct {
	Auth     AuthService
	Property PropertyService
	Booking  BookingService
	Payment  PaymentService
	Admin    AdminService
	Lead     LeadService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gateway payment.Gateway,
	forms map[string]relay.Form,
	forwarder Forwarder,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Property: NewPropertyService(repo.Property, log),
		Booking:  NewBookingService(repo, log),
		Payment:  NewPaymentService(repo, gateway, config.Payment.Currency, log),
		Admin:    NewAdminService(repo, log),
		Lead:     NewLeadService(forms, forwarder, log),
	}
}
