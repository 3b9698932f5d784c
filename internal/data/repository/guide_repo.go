package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GuideRepository interface {
	Create(ctx context.Context, guide *entity.Guide) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Guide, error)
	FindAll(ctx context.Context, limit, offset int, activeOnly bool) ([]*entity.Guide, error)
	CountAll(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, guide *entity.Guide) error
}

type guideRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGuideRepository(db database.PgxIface, log *zap.Logger) GuideRepository {
	return &guideRepository{
		db:  db,
		log: log.With(zap.String("repository", "guide")),
	}
}

func (r *guideRepository) Create(ctx context.Context, guide *entity.Guide) error {
	query := `
		INSERT INTO guides (id, name, email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		guide.ID,
		guide.Name,
		guide.Email,
		guide.Phone,
		guide.IsActive,
		guide.CreatedAt,
		guide.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create guide",
			zap.Error(err),
			zap.String("email", guide.Email),
		)
		return fmt.Errorf("create guide %s: %w", guide.Email, err)
	}

	return nil
}

func (r *guideRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Guide, error) {
	query := `
		SELECT id, name, email, phone, is_active, created_at, updated_at
		FROM guides
		WHERE id = $1
	`

	var guide entity.Guide
	err := r.db.QueryRow(ctx, query, id).Scan(
		&guide.ID,
		&guide.Name,
		&guide.Email,
		&guide.Phone,
		&guide.IsActive,
		&guide.CreatedAt,
		&guide.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guide by ID",
			zap.Error(err),
			zap.String("guide_id", id.String()),
		)
		return nil, fmt.Errorf("find guide by ID %s: %w", id.String(), err)
	}

	return &guide, nil
}

func (r *guideRepository) FindAll(ctx context.Context, limit, offset int, activeOnly bool) ([]*entity.Guide, error) {
	query := `
		SELECT id, name, email, phone, is_active, created_at, updated_at
		FROM guides
		WHERE ($3 = false OR is_active = true)
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, activeOnly)
	if err != nil {
		r.log.Error("Failed to find guides", zap.Error(err))
		return nil, fmt.Errorf("find guides: %w", err)
	}
	defer rows.Close()

	var guides []*entity.Guide
	for rows.Next() {
		var guide entity.Guide
		err := rows.Scan(
			&guide.ID,
			&guide.Name,
			&guide.Email,
			&guide.Phone,
			&guide.IsActive,
			&guide.CreatedAt,
			&guide.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan guide row", zap.Error(err))
			return nil, fmt.Errorf("scan guide row: %w", err)
		}
		guides = append(guides, &guide)
	}

	return guides, nil
}

func (r *guideRepository) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM guides WHERE ($1 = false OR is_active = true)`

	var count int64
	err := r.db.QueryRow(ctx, query, activeOnly).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count guides", zap.Error(err))
		return 0, fmt.Errorf("count guides: %w", err)
	}

	return count, nil
}

func (r *guideRepository) Update(ctx context.Context, guide *entity.Guide) error {
	query := `
		UPDATE guides
		SET name = $2, email = $3, phone = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		guide.ID,
		guide.Name,
		guide.Email,
		guide.Phone,
		guide.IsActive,
		guide.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update guide",
			zap.Error(err),
			zap.String("guide_id", guide.ID.String()),
		)
		return fmt.Errorf("update guide %s: %w", guide.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guide %s not found", guide.ID.String())
	}

	return nil
}
