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

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	// FindAll lists properties newest first. A non-nil landlordID restricts
	// the result to that landlord's properties.
	FindAll(ctx context.Context, landlordID *uuid.UUID, limit, offset int) ([]*entity.Property, error)
	CountAll(ctx context.Context, landlordID *uuid.UUID) (int64, error)
}

type propertyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPropertyRepository(db database.PgxIface, log *zap.Logger) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: log.With(zap.String("repository", "property")),
	}
}

func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	query := `
		INSERT INTO properties (id, landlord_id, title, address, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		property.ID,
		property.LandlordID,
		property.Title,
		property.Address,
		property.Description,
		property.Price,
		property.CreatedAt,
		property.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create property",
			zap.Error(err),
			zap.String("title", property.Title),
			zap.String("landlord_id", property.LandlordID.String()),
		)
		return fmt.Errorf("create property %s: %w", property.Title, database.Wrap(err))
	}

	return nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	query := `
		SELECT id, landlord_id, title, address, description, price, created_at, updated_at, deleted_at
		FROM properties
		WHERE id = $1 AND deleted_at IS NULL
	`

	var p entity.Property
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.LandlordID,
		&p.Title,
		&p.Address,
		&p.Description,
		&p.Price,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property by ID",
			zap.Error(err),
			zap.String("property_id", id.String()),
		)
		return nil, fmt.Errorf("find property by ID %s: %w", id.String(), database.Wrap(err))
	}

	return &p, nil
}

func (r *propertyRepository) FindAll(ctx context.Context, landlordID *uuid.UUID, limit, offset int) ([]*entity.Property, error) {
	query := `
		SELECT id, landlord_id, title, address, description, price, created_at, updated_at, deleted_at
		FROM properties
		WHERE deleted_at IS NULL
		  AND ($1::uuid IS NULL OR landlord_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, landlordID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find properties",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find properties: %w", database.Wrap(err))
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(
			&p.ID,
			&p.LandlordID,
			&p.Title,
			&p.Address,
			&p.Description,
			&p.Price,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.DeletedAt,
		); err != nil {
			r.log.Error("Failed to scan property row", zap.Error(err))
			return nil, fmt.Errorf("scan property row: %w", database.Wrap(err))
		}
		properties = append(properties, &p)
	}

	return properties, database.Wrap(rows.Err())
}

func (r *propertyRepository) CountAll(ctx context.Context, landlordID *uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM properties
		WHERE deleted_at IS NULL AND ($1::uuid IS NULL OR landlord_id = $1)
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, landlordID).Scan(&count); err != nil {
		r.log.Error("Failed to count properties", zap.Error(err))
		return 0, fmt.Errorf("count properties: %w", database.Wrap(err))
	}

	return count, nil
}
