package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id"`
	Amount        float64       `db:"amount"`
	Method        string        `db:"method"`
	Status        PaymentStatus `db:"status"`
	TransactionID string        `db:"transaction_id"`
	RefundAmount  *float64      `db:"refund_amount"`
}
