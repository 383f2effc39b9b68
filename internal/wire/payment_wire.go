package wire

import (
	"property-booking/internal/adaptor"
	"property-booking/internal/data/entity"
	"property-booking/pkg/middleware"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	deps Deps,
	config *utils.Config,
	log *zap.Logger,
) {
	// Provider callback, authenticated by body signature instead of a session.
	if config.Payment.WebhookSecret == "" {
		log.Warn("PAYMENT_WEBHOOK_SECRET not set, payment webhooks will be rejected")
	}
	r.With(middleware.WebhookSignature(config.Payment.WebhookSecret, log)).
		Post("/api/payments/webhook", paymentHandler.Webhook)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(deps.Repo.Session, deps.Repo.User, log))
		r.Use(middleware.RequireRole(log, entity.RoleContractor))
		if deps.Cache != nil {
			r.Use(middleware.Idempotency(deps.Cache, config.Redis.IdempotencyTTL, log))
		} else {
			log.Warn("Redis not configured, Idempotency-Key is ignored")
		}

		r.Post("/api/bookings/{id}/payment", paymentHandler.InitiatePayment)
	})
}
