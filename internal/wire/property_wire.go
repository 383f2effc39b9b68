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

func wireProperty(
	r chi.Router,
	propertyHandler *adaptor.PropertyHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/properties", propertyHandler.ListProperties)
	r.Get("/api/properties/{id}", propertyHandler.GetProperty)

	// ==================== LANDLORD ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(log, entity.RoleLandlord))

		r.Post("/api/properties", propertyHandler.CreateProperty)
		r.Get("/api/landlord/properties", propertyHandler.ListOwnProperties)
	})
}
