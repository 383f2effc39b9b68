package adaptor

import (
	"encoding/json"
	"net/http"

	"property-booking/internal/relay"
	"property-booking/internal/usecase"
	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	relaySuccessMessage = "Form submitted successfully"
	relayFailureMessage = "Failed to submit form"
)

// RelayHandler serves the CRM lead endpoints. All three share one flow and
// differ only in the target form.
type RelayHandler struct {
	service usecase.LeadService
	log     *zap.Logger
}

func NewRelayHandler(service usecase.LeadService, log *zap.Logger) *RelayHandler {
	return &RelayHandler{
		service: service,
		log:     log.With(zap.String("handler", "relay")),
	}
}

// Contact handles POST /api/ghl/contact
func (h *RelayHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, relay.FormContact)
}

// LandlordLead handles POST /api/ghl/landlord-lead
func (h *RelayHandler) LandlordLead(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, relay.FormLandlordLead)
}

// ContractorLead handles POST /api/ghl/contractor-lead
func (h *RelayHandler) ContractorLead(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, relay.FormContractorLead)
}

func (h *RelayHandler) submit(w http.ResponseWriter, r *http.Request, form string) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Warn("Invalid relay payload", zap.String("form", form), zap.Error(err))
		utils.ResponseRelayFailed(w, relayFailureMessage, err.Error())
		return
	}

	h.log.Info("Form received", zap.String("form", form), zap.Any("payload", payload))

	if err := h.service.Submit(r.Context(), form, payload); err != nil {
		h.log.Error("Form relay failed", zap.String("form", form), zap.Error(err))
		utils.ResponseRelayFailed(w, relayFailureMessage, err.Error())
		return
	}

	h.log.Info("Form relay succeeded", zap.String("form", form))
	utils.ResponseRelayOK(w, relaySuccessMessage)
}
