package repository

import (
	"context"
	"errors"

	"auditorium-booking/internal/data/entity"
	"auditorium-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentRepository reads payments. Payments are written together with their
// booking by BookingRepository.RecordPayment and SaveTransition.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, amount, method, status, transaction_id, refund_amount, created_at, updated_at`

func (r *paymentRepository) findOne(ctx context.Context, op, query string, arg uuid.UUID) (*entity.Payment, error) {
	var p entity.Payment
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.RefundAmount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.String("id", arg.String()))
		return nil, dbError(op+" "+arg.String(), err)
	}
	return &p, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, "find payment", `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.findOne(ctx, "find payment by booking", query, bookingID)
}
