package response

import (
	"time"

	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/lifecycle"
)

type BookingResponse struct {
	ID                 string                `json:"id"`
	UserID             string                `json:"user_id"`
	UserName           string                `json:"user_name,omitempty"`
	UserEmail          string                `json:"user_email,omitempty"`
	AuditoriumID       string                `json:"auditorium_id"`
	AuditoriumName     string                `json:"auditorium_name,omitempty"`
	EventName          string                `json:"event_name"`
	Dates              []lifecycle.DateEntry `json:"dates"`
	Schedule           []string              `json:"schedule,omitempty"`
	Amenities          []string              `json:"amenities"`
	TotalAmount        float64               `json:"total_amount"`
	DiscountPercentage *float64              `json:"discount_percentage,omitempty"`
	DiscountAmount     *float64              `json:"discount_amount,omitempty"`
	RejectReason       *string               `json:"reject_reason,omitempty"`
	RefundAmount       *float64              `json:"refund_amount,omitempty"`
	Status             lifecycle.Status      `json:"status"`
	PaymentStatus      entity.PaymentState   `json:"payment_status"`
	PaymentDueAt       *time.Time            `json:"payment_due_at,omitempty"`
	Payment            *PaymentResponse      `json:"payment,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        float64              `json:"amount"`
	Method        string               `json:"method"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID string               `json:"transaction_id"`
	RefundAmount  *float64             `json:"refund_amount,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type CancellationResponse struct {
	BookingID        string              `json:"booking_id"`
	Status           lifecycle.Status    `json:"status"`
	RefundPercentage float64             `json:"refund_percentage"`
	RefundAmount     float64             `json:"refund_amount"`
	PaymentStatus    entity.PaymentState `json:"payment_status"`
	HoursUntilStart  int                 `json:"hours_until_start"`
}

type BusySlotResponse struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"time_slots"`
}

// BookingToResponse fills the schedule summary when the dates parse; a
// malformed legacy row is still returned without it.
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID.String(),
		UserID:             b.UserID.String(),
		AuditoriumID:       b.AuditoriumID.String(),
		EventName:          b.EventName,
		Dates:              b.DateEntries,
		Amenities:          b.Amenities,
		TotalAmount:        b.TotalAmount,
		DiscountPercentage: b.DiscountPercentage,
		DiscountAmount:     b.DiscountAmount,
		RejectReason:       b.RejectReason,
		RefundAmount:       b.RefundAmount,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentDueAt:       b.PaymentDueAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}

	if days, err := lifecycle.ExpandDateEntries(b.DateEntries); err == nil {
		for _, m := range lifecycle.MergeTimeSlots(days) {
			resp.Schedule = append(resp.Schedule, m.String())
		}
	}

	return resp
}

func BookingDetailToResponse(d *entity.BookingDetail) BookingResponse {
	resp := BookingToResponse(&d.Booking)
	resp.UserName = d.UserName
	resp.UserEmail = d.UserEmail
	resp.AuditoriumName = d.AuditoriumName
	return resp
}

func PaymentToResponse(p *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID.String(),
		BookingID:     p.BookingID.String(),
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		RefundAmount:  p.RefundAmount,
		CreatedAt:     p.CreatedAt,
	}
}
