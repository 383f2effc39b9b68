package usecase

import (
	"context"
	"fmt"
	"time"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/internal/dto/request"
	"property-booking/internal/dto/response"
	"property-booking/internal/presenter"
	"property-booking/pkg/metrics"
	"property-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// ListBookings renders the bookings visible to the caller. Fetch errors
	// are logged and yield the empty table.
	ListBookings(ctx context.Context, userID string, viewer presenter.Viewer) presenter.Table
	UpdateStatus(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// offerPayment enables the payment actions of a listed row. Invoking the
// create-payment action of a listed row starts nothing on the server; the
// client follows it with POST /api/bookings/{id}/payment.
func offerPayment(string) {}

// allowedTransitions maps a current status to the statuses it may move to
// through the status endpoint. Paid is only reached through payment.
var allowedTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:   {entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	entity.BookingStatusConfirmed: {entity.BookingStatusCancelled},
}

func canTransition(from, to entity.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("invalid property ID format %s: %w", req.PropertyID, err)
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("invalid dates: end date %s is before start date %s", req.EndDate, req.StartDate)
	}

	contractor, err := s.repo.Contractor.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to find contractor profile", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find contractor profile: %w", err)
	}
	if contractor == nil {
		return nil, fmt.Errorf("contractor profile for user %s not found", userID)
	}

	property, err := s.repo.Property.FindByID(ctx, propertyID)
	if err != nil {
		s.log.Error("Failed to find property", zap.Error(err), zap.String("property_id", req.PropertyID))
		return nil, fmt.Errorf("find property %s: %w", req.PropertyID, err)
	}
	if property == nil {
		return nil, fmt.Errorf("property %s not found", req.PropertyID)
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		PropertyID:   property.ID,
		ContractorID: contractor.ID,
		StartDate:    start,
		EndDate:      end,
		Status:       entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("property_id", req.PropertyID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.IncBookingStatus(string(booking.Status))
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("property_id", property.ID.String()),
		zap.String("contractor_id", contractor.ID.String()),
		zap.Int("days", presenter.DayCount(start, end)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID string, viewer presenter.Viewer) presenter.Table {
	if viewer.Loading {
		return presenter.BuildTable(nil, viewer, nil)
	}

	filter, ok := s.filterFor(ctx, userID, viewer.Role)
	if !ok {
		return presenter.BuildTable(nil, viewer, nil)
	}

	bookings, err := s.repo.Booking.FindDetails(ctx, filter)
	if err != nil {
		s.log.Error("Failed to fetch bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("role", viewer.Role.String()),
		)
		bookings = nil
	}

	// Only contractors pay for their own bookings.
	var initiate presenter.PaymentFunc
	if viewer.Role == presenter.RoleContractor {
		initiate = offerPayment
	}

	return presenter.BuildTable(bookings, viewer, initiate)
}

func (s *bookingService) UpdateStatus(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindDetailByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if entity.UserRole(role) != entity.RoleAdmin && booking.Property.LandlordID.String() != userID {
		s.log.Warn("Status change on foreign booking",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("forbidden: booking %s is not on your property", bookingID)
	}

	next := entity.BookingStatus(req.Status)
	if !canTransition(booking.Status, next) {
		return nil, fmt.Errorf("cannot change booking status from %s to %s", booking.Status, next)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, next); err != nil {
		s.log.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("update booking %s status: %w", bookingID, err)
	}

	metrics.IncBookingStatus(string(next))
	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)),
		zap.String("by", userID),
	)

	booking.Status = next
	booking.UpdatedAt = time.Now()
	resp := response.BookingToResponse(&booking.Booking)
	return &resp, nil
}

// filterFor scopes the booking query to the viewer. It reports false when the
// viewer can see nothing.
func (s *bookingService) filterFor(ctx context.Context, userID string, role presenter.Role) (repository.BookingFilter, bool) {
	var filter repository.BookingFilter

	switch role {
	case presenter.RoleAdmin:
		return filter, true
	case presenter.RoleLandlord:
		landlordID, err := uuid.Parse(userID)
		if err != nil {
			return filter, false
		}
		filter.LandlordID = &landlordID
		return filter, true
	case presenter.RoleContractor:
		userUUID, err := uuid.Parse(userID)
		if err != nil {
			return filter, false
		}
		contractor, err := s.repo.Contractor.FindByUserID(ctx, userUUID)
		if err != nil {
			s.log.Error("Failed to find contractor profile", zap.Error(err), zap.String("user_id", userID))
			return filter, false
		}
		if contractor == nil {
			return filter, false
		}
		filter.ContractorID = &contractor.ID
		return filter, true
	default:
		return filter, false
	}
}
