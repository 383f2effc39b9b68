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

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// Table contents depend on the caller's role.
		r.Get("/api/bookings", bookingHandler.ListBookings)

		r.With(middleware.RequireRole(log, entity.RoleContractor)).
			Post("/api/bookings", bookingHandler.CreateBooking)

		r.With(middleware.RequireRole(log, entity.RoleLandlord, entity.RoleAdmin)).
			Put("/api/bookings/{id}/status", bookingHandler.UpdateStatus)
	})
}
