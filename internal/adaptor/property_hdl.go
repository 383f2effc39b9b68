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

type PropertyHandler struct {
	service usecase.PropertyService
	log     *zap.Logger
}

func NewPropertyHandler(service usecase.PropertyService, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		log:     log.With(zap.String("handler", "property")),
	}
}

// ListProperties handles GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.ListProperties(r.Context(), parsePagination(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list properties")
		return
	}

	utils.ResponseSuccess(w, "success", properties)
}

// GetProperty handles GET /api/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get property")
		return
	}

	utils.ResponseSuccess(w, "success", property)
}

// CreateProperty handles POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	property, err := h.service.CreateProperty(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create property")
		return
	}

	utils.ResponseCreated(w, "Property created successfully", property)
}

// ListOwnProperties handles GET /api/landlord/properties
func (h *PropertyHandler) ListOwnProperties(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	properties, err := h.service.ListLandlordProperties(r.Context(), userID.String(), parsePagination(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list landlord properties")
		return
	}

	utils.ResponseSuccess(w, "success", properties)
}
