package repository

import (
	"context"
	"errors"
	"fmt"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/lifecycle"
	"auditorium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, status *lifecycle.Status, limit, offset int) ([]*entity.BookingDetail, error)
	CountAll(ctx context.Context, status *lifecycle.Status) (int64, error)

	// FindActiveByAuditorium returns pending and approved bookings of one auditorium.
	FindActiveByAuditorium(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Booking, error)
	// FindSweepCandidates returns every pending and approved booking.
	FindSweepCandidates(ctx context.Context) ([]*entity.BookingDetail, error)

	SaveTransition(ctx context.Context, id uuid.UUID, expected lifecycle.Status, t entity.BookingTransition) error
	RecordPayment(ctx context.Context, payment *entity.Payment) error

	CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error)
	CountAwaitingPayment(ctx context.Context) (int64, error)
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

const bookingColumns = `b.id, b.user_id, b.auditorium_id, b.event_name, b.dates, b.amenities,
	b.total_amount, b.discount_percentage, b.discount_amount, b.reject_reason, b.refund_amount,
	b.status, b.payment_status, b.payment_due_at, b.created_at, b.updated_at`

const bookingDetailQuery = `
	SELECT ` + bookingColumns + `, u.name, u.email, a.name
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN auditoriums a ON a.id = b.auditorium_id
`

func bookingFields(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.UserID,
		&b.AuditoriumID,
		&b.EventName,
		&b.DateEntries,
		&b.Amenities,
		&b.TotalAmount,
		&b.DiscountPercentage,
		&b.DiscountAmount,
		&b.RejectReason,
		&b.RefundAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentDueAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var d entity.BookingDetail
	dest := append(bookingFields(&d.Booking), &d.UserName, &d.UserEmail, &d.AuditoriumName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, auditorium_id, event_name, dates, amenities, total_amount,
		                      status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.AuditoriumID,
		b.EventName,
		b.DateEntries,
		b.Amenities,
		b.TotalAmount,
		b.Status,
		b.PaymentStatus,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.String("user_id", b.UserID.String()),
		)
		return dbError("create booking "+b.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRow(ctx, bookingDetailQuery+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, dbError("find booking "+id.String(), err)
	}

	return d, nil
}

func (r *bookingRepository) queryDetails(ctx context.Context, op, query string, args ...any) ([]*entity.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, dbError(op, err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, dbError("scan booking row", err)
		}
		bookings = append(bookings, d)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate booking rows", err)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailQuery + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryDetails(ctx, "find bookings by user "+userID.String(), query, userID, limit, offset)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, dbError("count bookings by user", err)
	}
	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status *lifecycle.Status, limit, offset int) ([]*entity.BookingDetail, error) {
	if status != nil {
		query := bookingDetailQuery + `
			WHERE b.status = $1
			ORDER BY b.created_at DESC
			LIMIT $2 OFFSET $3
		`
		return r.queryDetails(ctx, "find bookings by status", query, *status, limit, offset)
	}

	query := bookingDetailQuery + `
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryDetails(ctx, "find all bookings", query, limit, offset)
}

func (r *bookingRepository) CountAll(ctx context.Context, status *lifecycle.Status) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, dbError("count bookings", err)
	}
	return count, nil
}

func (r *bookingRepository) FindActiveByAuditorium(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.auditorium_id = $1 AND b.status IN ('pending', 'approved')
	`

	rows, err := r.db.Query(ctx, query, auditoriumID)
	if err != nil {
		r.log.Error("Failed to find active bookings",
			zap.Error(err),
			zap.String("auditorium_id", auditoriumID.String()),
		)
		return nil, dbError("find active bookings", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(bookingFields(&b)...); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, dbError("scan booking row", err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate booking rows", err)
	}

	return bookings, nil
}

func (r *bookingRepository) FindSweepCandidates(ctx context.Context) ([]*entity.BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.status IN ('pending', 'approved') ORDER BY b.created_at`
	return r.queryDetails(ctx, "find sweep candidates", query)
}

// SaveTransition writes t only while the booking is still in expected. A
// lost race surfaces as a conflict. Cancelling clears the discount and
// leaving rejected clears the reject reason. When the transition refunds a paid
// booking, the payment row is updated in the same transaction.
func (r *bookingRepository) SaveTransition(ctx context.Context, id uuid.UUID, expected lifecycle.Status, t entity.BookingTransition) error {
	refund := t.RefundAmount != nil && *t.RefundAmount > 0
	// The discount survives only as long as the approval does; the reject
	// reason only while the booking stays rejected.
	keepDiscount := t.Status != lifecycle.StatusCancelled
	keepReason := t.Status == lifecycle.StatusRejected

	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings
			SET status = $3,
			    discount_percentage = CASE WHEN $10::boolean THEN COALESCE($4, discount_percentage) END,
			    discount_amount = CASE WHEN $10::boolean THEN COALESCE($5, discount_amount) END,
			    reject_reason = CASE WHEN $11::boolean THEN COALESCE($6, reject_reason) END,
			    refund_amount = COALESCE($7, refund_amount),
			    payment_due_at = COALESCE($8, payment_due_at),
			    payment_status = CASE WHEN $9::boolean AND payment_status = 'paid'
			                          THEN 'refunded' ELSE payment_status END,
			    updated_at = NOW()
			WHERE id = $1 AND status = $2
		`

		result, err := tx.Exec(ctx, query,
			id,
			expected,
			t.Status,
			t.DiscountPercentage,
			t.DiscountAmount,
			t.RejectReason,
			t.RefundAmount,
			t.PaymentDueAt,
			refund,
			keepDiscount,
			keepReason,
		)
		if err != nil {
			r.log.Error("Failed to save booking transition",
				zap.Error(err),
				zap.String("booking_id", id.String()),
				zap.String("to", string(t.Status)),
			)
			return dbError("save booking transition "+id.String(), err)
		}

		if result.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
				return dbError("check booking "+id.String(), err)
			}
			if !exists {
				return fmt.Errorf("%w: booking %s", apperror.ErrNotFound, id)
			}
			return fmt.Errorf("%w: booking %s is no longer %s", apperror.ErrConflict, id, expected)
		}

		if refund {
			_, err := tx.Exec(ctx, `
				UPDATE payments
				SET status = $2, refund_amount = $3, updated_at = NOW()
				WHERE booking_id = $1 AND status = $4
			`, id, entity.PaymentStatusRefunded, *t.RefundAmount, entity.PaymentStatusCompleted)
			if err != nil {
				r.log.Error("Failed to refund payment", zap.Error(err), zap.String("booking_id", id.String()))
				return dbError("refund payment for booking "+id.String(), err)
			}
		}

		return nil
	})
}

// RecordPayment stores a payment and flags its booking paid. The booking must
// be approved and unpaid.
func (r *bookingRepository) RecordPayment(ctx context.Context, p *entity.Payment) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE bookings
			SET payment_status = $2, updated_at = NOW()
			WHERE id = $1 AND status = $3 AND payment_status = $4
		`, p.BookingID, entity.PaymentStatePaid, lifecycle.StatusApproved, entity.PaymentStateUnpaid)
		if err != nil {
			r.log.Error("Failed to mark booking paid", zap.Error(err), zap.String("booking_id", p.BookingID.String()))
			return dbError("mark booking paid", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("%w: booking %s is not awaiting payment", apperror.ErrConflict, p.BookingID)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO payments (id, booking_id, amount, method, status, transaction_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, p.ID, p.BookingID, p.Amount, p.Method, p.Status, p.TransactionID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			r.log.Error("Failed to create payment", zap.Error(err), zap.String("booking_id", p.BookingID.String()))
			return dbError("create payment", err)
		}

		return nil
	})
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, dbError("count bookings by status", err)
	}
	defer rows.Close()

	counts := make(map[lifecycle.Status]int64)
	for rows.Next() {
		var status lifecycle.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, dbError("scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate status counts", err)
	}

	return counts, nil
}

func (r *bookingRepository) CountAwaitingPayment(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = $1 AND payment_status = $2`,
		lifecycle.StatusApproved, entity.PaymentStateUnpaid,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings awaiting payment", zap.Error(err))
		return 0, dbError("count awaiting payment", err)
	}
	return count, nil
}
