package repository

import (
	"context"
	"fmt"

	"property-booking/internal/data/entity"
	"property-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows FindDetails. Nil fields do not filter.
type BookingFilter struct {
	ContractorID *uuid.UUID
	LandlordID   *uuid.UUID
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	// FindDetails returns bookings joined with their property, contractor and
	// latest invoice, newest first.
	FindDetails(ctx context.Context, filter BookingFilter) ([]*entity.BookingDetail, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailQuery = `
	SELECT b.id, b.property_id, b.contractor_id, b.start_date, b.end_date, b.status,
	       b.created_at, b.updated_at,
	       p.title, p.address, p.price, p.landlord_id,
	       c.full_name,
	       i.id, i.amount, i.status, i.payment_url
	FROM bookings b
	JOIN properties p ON p.id = b.property_id
	LEFT JOIN contractors c ON c.id = b.contractor_id
	LEFT JOIN LATERAL (
		SELECT id, amount, status, payment_url
		FROM invoices
		WHERE booking_id = b.id
		ORDER BY created_at DESC
		LIMIT 1
	) i ON TRUE
`

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var (
		d                 entity.BookingDetail
		contractorName    *string
		invoiceID         *uuid.UUID
		invoiceAmount     *float64
		invoiceStatus     *string
		invoicePaymentURL *string
	)

	err := row.Scan(
		&d.ID,
		&d.PropertyID,
		&d.ContractorID,
		&d.StartDate,
		&d.EndDate,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Property.Title,
		&d.Property.Address,
		&d.Property.Price,
		&d.Property.LandlordID,
		&contractorName,
		&invoiceID,
		&invoiceAmount,
		&invoiceStatus,
		&invoicePaymentURL,
	)
	if err != nil {
		return nil, err
	}

	if contractorName != nil {
		d.Contractor = &entity.ContractorSnapshot{FullName: *contractorName}
	}

	if invoiceID != nil {
		d.Invoice = &entity.InvoiceSnapshot{
			ID:         *invoiceID,
			PaymentURL: invoicePaymentURL,
		}
		if invoiceAmount != nil {
			d.Invoice.Amount = *invoiceAmount
		}
		if invoiceStatus != nil {
			d.Invoice.Status = entity.InvoiceStatus(*invoiceStatus)
		}
	}

	return &d, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, property_id, contractor_id, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.PropertyID,
		booking.ContractorID,
		booking.StartDate,
		booking.EndDate,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("property_id", booking.PropertyID.String()),
			zap.String("contractor_id", booking.ContractorID.String()),
		)
		return fmt.Errorf("create booking for property %s: %w", booking.PropertyID.String(), database.Wrap(err))
	}

	return nil
}

func (r *bookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.id = $1`

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), database.Wrap(err))
	}

	return detail, nil
}

func (r *bookingRepository) FindDetails(ctx context.Context, filter BookingFilter) ([]*entity.BookingDetail, error) {
	query := bookingDetailQuery + `
		WHERE ($1::uuid IS NULL OR b.contractor_id = $1)
		  AND ($2::uuid IS NULL OR p.landlord_id = $2)
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, filter.ContractorID, filter.LandlordID)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", database.Wrap(err))
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", database.Wrap(err))
		}
		bookings = append(bookings, detail)
	}

	return bookings, database.Wrap(rows.Err())
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), database.Wrap(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
