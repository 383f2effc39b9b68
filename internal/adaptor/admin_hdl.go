package adaptor

import (
	"net/http"

	"property-booking/internal/usecase"
	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListContractors handles GET /api/admin/contractors
func (h *AdminHandler) ListContractors(w http.ResponseWriter, r *http.Request) {
	contractors, err := h.service.ListContractors(r.Context(), parsePagination(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list contractors")
		return
	}

	utils.ResponseSuccess(w, "success", contractors)
}

// ListInvoices handles GET /api/admin/invoices
func (h *AdminHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context(), parsePagination(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list invoices")
		return
	}

	utils.ResponseSuccess(w, "success", invoices)
}
