package wire

import (
	"property-booking/internal/adaptor"
	"property-booking/internal/relay"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRelay(
	r chi.Router,
	relayHandler *adaptor.RelayHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== CRM RELAYS (public) ====================
	r.Post("/api/ghl/contact", relayHandler.Contact)
	r.Post("/api/ghl/landlord-lead", relayHandler.LandlordLead)
	r.Post("/api/ghl/contractor-lead", relayHandler.ContractorLead)

	for name, form := range relay.Forms(config.GHL) {
		if form.URL == "" {
			log.Warn("CRM relay target not configured", zap.String("form", name))
		}
	}
}
