package repository

import (
	"context"

	"auditorium-booking/internal/data/entity"
	"auditorium-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.FeedbackDetail, error)
	FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID, limit, offset int) ([]*entity.FeedbackDetail, error)
	CountAll(ctx context.Context, auditoriumID *uuid.UUID) (int64, error)
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, user_id, auditorium_id, feedback_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, f.ID, f.UserID, f.AuditoriumID, f.Text, f.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.String("user_id", f.UserID.String()),
			zap.String("auditorium_id", f.AuditoriumID.String()),
		)
		return dbError("create feedback", err)
	}

	return nil
}

const feedbackDetailQuery = `
	SELECT f.id, f.user_id, f.auditorium_id, f.feedback_text, f.created_at, u.name, a.name
	FROM feedback f
	JOIN users u ON u.id = f.user_id
	JOIN auditoriums a ON a.id = f.auditorium_id
`

func (r *feedbackRepository) query(ctx context.Context, op, query string, args ...any) ([]*entity.FeedbackDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, dbError(op, err)
	}
	defer rows.Close()

	var items []*entity.FeedbackDetail
	for rows.Next() {
		var d entity.FeedbackDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.AuditoriumID,
			&d.Text,
			&d.CreatedAt,
			&d.UserName,
			&d.AuditoriumName,
		)
		if err != nil {
			r.log.Error("Failed to scan feedback row", zap.Error(err))
			return nil, dbError("scan feedback row", err)
		}
		items = append(items, &d)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate feedback rows", err)
	}

	return items, nil
}

func (r *feedbackRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.FeedbackDetail, error) {
	q := feedbackDetailQuery + ` ORDER BY f.created_at DESC LIMIT $1 OFFSET $2`
	return r.query(ctx, "find all feedback", q, limit, offset)
}

func (r *feedbackRepository) FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID, limit, offset int) ([]*entity.FeedbackDetail, error) {
	q := feedbackDetailQuery + ` WHERE f.auditorium_id = $1 ORDER BY f.created_at DESC LIMIT $2 OFFSET $3`
	return r.query(ctx, "find feedback by auditorium", q, auditoriumID, limit, offset)
}

func (r *feedbackRepository) CountAll(ctx context.Context, auditoriumID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM feedback`
	args := []any{}
	if auditoriumID != nil {
		query += ` WHERE auditorium_id = $1`
		args = append(args, *auditoriumID)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count feedback", zap.Error(err))
		return 0, dbError("count feedback", err)
	}
	return count, nil
}
