package entity

import (
	"time"

	"auditorium-booking/internal/lifecycle"

	"github.com/google/uuid"
)

type PaymentState string

const (
	PaymentStateUnpaid   PaymentState = "unpaid"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateRefunded PaymentState = "refunded"
)

type Booking struct {
	BaseNoDelete
	UserID             uuid.UUID             `db:"user_id"`
	AuditoriumID       uuid.UUID             `db:"auditorium_id"`
	EventName          string                `db:"event_name"`
	DateEntries        []lifecycle.DateEntry `db:"dates"`
	Amenities          []string              `db:"amenities"`
	TotalAmount        float64               `db:"total_amount"`
	DiscountPercentage *float64              `db:"discount_percentage"`
	DiscountAmount     *float64              `db:"discount_amount"`
	RejectReason       *string               `db:"reject_reason"`
	RefundAmount       *float64              `db:"refund_amount"`
	Status             lifecycle.Status      `db:"status"`
	PaymentStatus      PaymentState          `db:"payment_status"`
	PaymentDueAt       *time.Time            `db:"payment_due_at"`
}

// Snapshot is the engine view of b.
func (b *Booking) Snapshot() lifecycle.Booking {
	return lifecycle.Booking{
		ID:                 b.ID.String(),
		UserID:             b.UserID.String(),
		AuditoriumID:       b.AuditoriumID.String(),
		EventName:          b.EventName,
		DateEntries:        b.DateEntries,
		Amenities:          b.Amenities,
		TotalAmount:        b.TotalAmount,
		DiscountPercentage: b.DiscountPercentage,
		DiscountAmount:     b.DiscountAmount,
		RejectReason:       b.RejectReason,
		RefundAmount:       b.RefundAmount,
		Status:             b.Status,
	}
}

// BookingTransition is the set of columns written when a booking changes status.
type BookingTransition struct {
	Status             lifecycle.Status
	DiscountPercentage *float64
	DiscountAmount     *float64
	RejectReason       *string
	RefundAmount       *float64
	PaymentDueAt       *time.Time
}

// BookingDetail is a booking joined with the names shown in listings.
type BookingDetail struct {
	Booking
	UserName       string `db:"user_name"`
	UserEmail      string `db:"user_email"`
	AuditoriumName string `db:"auditorium_name"`
}
