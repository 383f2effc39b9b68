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

type ContractorRepository interface {
	Create(ctx context.Context, contractor *entity.Contractor) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Contractor, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Contractor, error)
	CountAll(ctx context.Context) (int64, error)
}

type contractorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewContractorRepository(db database.PgxIface, log *zap.Logger) ContractorRepository {
	return &contractorRepository{
		db:  db,
		log: log.With(zap.String("repository", "contractor")),
	}
}

func (r *contractorRepository) Create(ctx context.Context, contractor *entity.Contractor) error {
	query := `
		INSERT INTO contractors (id, user_id, full_name, phone, company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		contractor.ID,
		contractor.UserID,
		contractor.FullName,
		contractor.Phone,
		contractor.Company,
		contractor.CreatedAt,
		contractor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create contractor",
			zap.Error(err),
			zap.String("user_id", contractor.UserID.String()),
		)
		return fmt.Errorf("create contractor for user %s: %w", contractor.UserID.String(), database.Wrap(err))
	}

	return nil
}

func (r *contractorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Contractor, error) {
	query := `
		SELECT id, user_id, full_name, phone, company, created_at, updated_at
		FROM contractors
		WHERE user_id = $1
	`

	var c entity.Contractor
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.FullName,
		&c.Phone,
		&c.Company,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find contractor by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find contractor by user ID %s: %w", userID.String(), database.Wrap(err))
	}

	return &c, nil
}

func (r *contractorRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Contractor, error) {
	query := `
		SELECT id, user_id, full_name, phone, company, created_at, updated_at
		FROM contractors
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find contractors",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find contractors: %w", database.Wrap(err))
	}
	defer rows.Close()

	var contractors []*entity.Contractor
	for rows.Next() {
		var c entity.Contractor
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.FullName,
			&c.Phone,
			&c.Company,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan contractor row", zap.Error(err))
			return nil, fmt.Errorf("scan contractor row: %w", database.Wrap(err))
		}
		contractors = append(contractors, &c)
	}

	return contractors, database.Wrap(rows.Err())
}

func (r *contractorRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contractors`).Scan(&count); err != nil {
		r.log.Error("Failed to count contractors", zap.Error(err))
		return 0, fmt.Errorf("count contractors: %w", database.Wrap(err))
	}
	return count, nil
}
