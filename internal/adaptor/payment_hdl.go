package adaptor

import (
	"encoding/json"
	"net/http"

	"property-booking/internal/dto/request"
	"property-booking/internal/usecase"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// InitiatePayment handles POST /api/bookings/{id}/payment
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	invoice, err := h.service.InitiatePayment(r.Context(), userID.String(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "initiate payment")
		return
	}

	utils.ResponseCreated(w, "Payment initiated", invoice)
}

// Webhook handles POST /api/payments/webhook
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "handle payment webhook")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
