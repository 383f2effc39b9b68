package adaptor

import (
	"net/http"
	"strings"

	"property-booking/internal/dto/request"
	"property-booking/internal/usecase"
	"property-booking/pkg/database"
	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Property *PropertyHandler
	Booking  *BookingHandler
	Payment  *PaymentHandler
	Admin    *AdminHandler
	Relay    *RelayHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Property: NewPropertyHandler(service.Property, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Payment:  NewPaymentHandler(service.Payment, log),
		Admin:    NewAdminHandler(service.Admin, log),
		Relay:    NewRelayHandler(service.Lead, log),
	}
}

// handleServiceError maps service error messages onto HTTP responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	// Driver and server failures are never the caller's fault, whatever
	// their text says.
	case database.IsQueryError(err):
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "unauthorized"):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "forbidden"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "already paid"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "cannot"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func parsePagination(r *http.Request) *request.PaginatedRequest {
	return request.PaginationFromQuery(r.URL.Query())
}
