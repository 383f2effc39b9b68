package wire

import (
	"property-booking/internal/adaptor"
	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/pkg/middleware"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(log, entity.RoleAdmin))

		r.Get("/contractors", adminHandler.ListContractors)
		r.Get("/invoices", adminHandler.ListInvoices)
	})
}
