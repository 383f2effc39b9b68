package repository

import (
	"context"
	"errors"
	"fmt"

	"property-booking/internal/data/entity"
	"property-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrOpenInvoiceExists is returned by Create when the booking already has an
// unpaid invoice.
var ErrOpenInvoiceExists = errors.New("booking already has an unpaid invoice")

const openInvoiceIndex = "invoices_one_unpaid_per_booking"

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	FindLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	CountAll(ctx context.Context) (int64, error)

	// Business queries
	SetCheckout(ctx context.Context, invoiceID uuid.UUID, paymentURL, externalID string) error
	// Settle marks the invoice paid and moves its booking from confirmed to
	// paid in one transaction. It reports whether the booking moved; a
	// booking in any other status is left alone.
	Settle(ctx context.Context, invoiceID, bookingID uuid.UUID) (bool, error)
}

type invoiceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInvoiceRepository(db database.PgxIface, log *zap.Logger) InvoiceRepository {
	return &invoiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "invoice")),
	}
}

const invoiceColumns = `id, booking_id, amount, currency, status, payment_url, external_id, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.BookingID,
		&inv.Amount,
		&inv.Currency,
		&inv.Status,
		&inv.PaymentURL,
		&inv.ExternalID,
		&inv.PaidAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, booking_id, amount, currency, status, payment_url, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		invoice.ID,
		invoice.BookingID,
		invoice.Amount,
		invoice.Currency,
		invoice.Status,
		invoice.PaymentURL,
		invoice.ExternalID,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)

	if database.IsUniqueViolation(err, openInvoiceIndex) {
		return ErrOpenInvoiceExists
	}
	if err != nil {
		r.log.Error("Failed to create invoice",
			zap.Error(err),
			zap.String("booking_id", invoice.BookingID.String()),
		)
		return fmt.Errorf("create invoice for booking %s: %w", invoice.BookingID.String(), database.Wrap(err))
	}

	return nil
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find invoice by ID",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
		)
		return nil, fmt.Errorf("find invoice by ID %s: %w", id.String(), database.Wrap(err))
	}

	return inv, nil
}

func (r *invoiceRepository) FindLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	inv, err := scanInvoice(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find invoice by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find invoice by booking ID %s: %w", bookingID.String(), database.Wrap(err))
	}

	return inv, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find invoices",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find invoices: %w", database.Wrap(err))
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			r.log.Error("Failed to scan invoice row", zap.Error(err))
			return nil, fmt.Errorf("scan invoice row: %w", database.Wrap(err))
		}
		invoices = append(invoices, inv)
	}

	return invoices, database.Wrap(rows.Err())
}

func (r *invoiceRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count); err != nil {
		r.log.Error("Failed to count invoices", zap.Error(err))
		return 0, fmt.Errorf("count invoices: %w", database.Wrap(err))
	}
	return count, nil
}

func (r *invoiceRepository) SetCheckout(ctx context.Context, invoiceID uuid.UUID, paymentURL, externalID string) error {
	query := `
		UPDATE invoices
		SET payment_url = $2, external_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, invoiceID, paymentURL, externalID)
	if err != nil {
		r.log.Error("Failed to store checkout on invoice",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
		)
		return fmt.Errorf("set checkout on invoice %s: %w", invoiceID.String(), database.Wrap(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s not found", invoiceID.String())
	}

	return nil
}

func (r *invoiceRepository) Settle(ctx context.Context, invoiceID, bookingID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin settle invoice %s: %w", invoiceID.String(), database.Wrap(err))
	}
	// No-op once committed.
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = 'paid', paid_at = COALESCE(paid_at, NOW()), updated_at = NOW()
		WHERE id = $1
	`, invoiceID)
	if err != nil {
		r.log.Error("Failed to mark invoice paid",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
		)
		return false, fmt.Errorf("mark invoice %s paid: %w", invoiceID.String(), database.Wrap(err))
	}
	if result.RowsAffected() == 0 {
		return false, fmt.Errorf("invoice %s not found", invoiceID.String())
	}

	result, err = tx.Exec(ctx, `
		UPDATE bookings
		SET status = 'paid', updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`, bookingID)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("mark booking %s paid: %w", bookingID.String(), database.Wrap(err))
	}
	moved := result.RowsAffected() == 1

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit settle invoice %s: %w", invoiceID.String(), database.Wrap(err))
	}

	return moved, nil
}
