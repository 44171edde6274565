package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuditoriumRepository interface {
	Create(ctx context.Context, auditorium *entity.Auditorium) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error)
	FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Auditorium, error)
	CountAll(ctx context.Context, search *string) (int64, error)
	Update(ctx context.Context, auditorium *entity.Auditorium) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditoriumRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditoriumRepository(db database.PgxIface, log *zap.Logger) AuditoriumRepository {
	return &auditoriumRepository{
		db:  db,
		log: log.With(zap.String("repository", "auditorium")),
	}
}

const auditoriumColumns = `id, name, description, capacity, location, price_per_hour,
	open_time, close_time, amenities, created_at, updated_at, deleted_at`

func scanAuditorium(row pgx.Row) (*entity.Auditorium, error) {
	var a entity.Auditorium
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.Capacity,
		&a.Location,
		&a.PricePerHour,
		&a.OpenTime,
		&a.CloseTime,
		&a.Amenities,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auditoriumRepository) Create(ctx context.Context, a *entity.Auditorium) error {
	query := `
		INSERT INTO auditoriums (id, name, description, capacity, location, price_per_hour,
		                         open_time, close_time, amenities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Description,
		a.Capacity,
		a.Location,
		a.PricePerHour,
		a.OpenTime,
		a.CloseTime,
		a.Amenities,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create auditorium",
			zap.Error(err),
			zap.String("name", a.Name),
		)
		return dbError("create auditorium "+a.Name, err)
	}

	return nil
}

func (r *auditoriumRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	query := `SELECT ` + auditoriumColumns + ` FROM auditoriums WHERE id = $1 AND deleted_at IS NULL`

	a, err := scanAuditorium(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditorium by ID",
			zap.Error(err),
			zap.String("auditorium_id", id.String()),
		)
		return nil, dbError("find auditorium "+id.String(), err)
	}

	return a, nil
}

func (r *auditoriumRepository) FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Auditorium, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + auditoriumColumns + ` FROM auditoriums WHERE deleted_at IS NULL`)

	args := []any{}
	argCount := 1

	if search != nil && *search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all auditoriums",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("search", search),
		)
		return nil, dbError(fmt.Sprintf("find all auditoriums limit %d offset %d", limit, offset), err)
	}
	defer rows.Close()

	var auditoriums []*entity.Auditorium
	for rows.Next() {
		a, err := scanAuditorium(rows)
		if err != nil {
			r.log.Error("Failed to scan auditorium row", zap.Error(err))
			return nil, dbError("scan auditorium row", err)
		}
		auditoriums = append(auditoriums, a)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate auditorium rows", err)
	}

	return auditoriums, nil
}

func (r *auditoriumRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	query := `SELECT COUNT(*) FROM auditoriums WHERE deleted_at IS NULL`
	args := []any{}

	if search != nil && *search != "" {
		query += " AND name ILIKE $1"
		args = append(args, "%"+*search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count auditoriums", zap.Error(err), zap.Stringp("search", search))
		return 0, dbError("count auditoriums", err)
	}

	return total, nil
}

func (r *auditoriumRepository) Update(ctx context.Context, a *entity.Auditorium) error {
	query := `
		UPDATE auditoriums
		SET name = $2, description = $3, capacity = $4, location = $5, price_per_hour = $6,
		    open_time = $7, close_time = $8, amenities = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Description,
		a.Capacity,
		a.Location,
		a.PricePerHour,
		a.OpenTime,
		a.CloseTime,
		a.Amenities,
		a.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update auditorium",
			zap.Error(err),
			zap.String("auditorium_id", a.ID.String()),
		)
		return dbError("update auditorium "+a.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: auditorium %s", apperror.ErrNotFound, a.ID)
	}

	return nil
}

func (r *auditoriumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE auditoriums SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete auditorium",
			zap.Error(err),
			zap.String("auditorium_id", id.String()),
		)
		return dbError("delete auditorium "+id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: auditorium %s", apperror.ErrNotFound, id)
	}

	r.log.Info("Auditorium deleted", zap.String("auditorium_id", id.String()))
	return nil
}
