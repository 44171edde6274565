package request

import "auditorium-booking/internal/lifecycle"

type DateRangeRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

type DateEntryRequest struct {
	Date      string            `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateRange *DateRangeRequest `json:"date_range,omitempty" validate:"omitempty"`
	TimeSlots []string          `json:"time_slots" validate:"required,min=1,dive,notblank"`
}

func (d DateEntryRequest) ToEntry() lifecycle.DateEntry {
	e := lifecycle.DateEntry{
		Date:      d.Date,
		TimeSlots: d.TimeSlots,
	}
	if d.DateRange != nil {
		e.DateRange = &lifecycle.DateRange{Start: d.DateRange.Start, End: d.DateRange.End}
	}
	return e
}

type CreateBookingRequest struct {
	AuditoriumID string             `json:"auditorium_id" validate:"required,uuid"`
	EventName    string             `json:"event_name" validate:"required,notblank,max=200"`
	Dates        []DateEntryRequest `json:"dates" validate:"required,min=1,dive"`
	Amenities    []string           `json:"amenities" validate:"omitempty,dive,notblank"`
}

func (r *CreateBookingRequest) DateEntries() []lifecycle.DateEntry {
	entries := make([]lifecycle.DateEntry, len(r.Dates))
	for i, d := range r.Dates {
		entries[i] = d.ToEntry()
	}
	return entries
}

type ReviewBookingRequest struct {
	Action   string   `json:"action" validate:"required,oneof=approve reject"`
	Discount *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Reason   *string  `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type PayBookingRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Method string  `json:"method" validate:"required,oneof=card bank_transfer e_wallet"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status *string `validate:"omitempty,oneof=pending approved rejected cancelled complete"`
}
