package adaptor

import (
	"encoding/json"
	"net/http"

	"property-booking/internal/dto/request"
	"property-booking/internal/presenter"
	"property-booking/internal/usecase"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// ListBookings handles GET /api/bookings. The payload is the booking table
// rendered for the caller's role.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	roleName, _ := utils.GetRoleFromContext(r.Context())
	role, err := presenter.ParseRole(roleName)
	if err != nil {
		h.log.Warn("Unknown session role", zap.String("role", roleName))
		utils.ResponseForbidden(w, "Access denied")
		return
	}

	table := h.service.ListBookings(r.Context(), userID.String(), presenter.Viewer{Role: role})
	utils.ResponseSuccess(w, "success", table)
}

// UpdateStatus handles PUT /api/bookings/{id}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), userID.String(), role, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}
