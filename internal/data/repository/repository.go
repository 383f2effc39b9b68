package repository

import (
	"property-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Contractor ContractorRepository
	Property   PropertyRepository
	Booking    BookingRepository
	Invoice    InvoiceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Contractor: NewContractorRepository(db, log),
		Property:   NewPropertyRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Invoice:    NewInvoiceRepository(db, log),
	}
}
