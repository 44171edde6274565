// Package lifecycle decides booking status transitions, discounts and refunds.
//
// Everything here is a pure function of a booking snapshot and, where timing
// matters, an instant supplied by the caller. Loading, saving and delivering
// notifications belong to the caller.
package lifecycle

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusComplete  Status = "complete"
)

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusComplete
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusComplete:
		return true
	}
	return false
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DateEntry is either a single date or an inclusive date range, never both,
// carrying one set of "HH:MM - HH:MM" slots.
type DateEntry struct {
	Date      string     `json:"date,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
	TimeSlots []string   `json:"time_slots"`
}

// Booking is the snapshot the engine works on.
type Booking struct {
	ID                 string
	UserID             string
	AuditoriumID       string
	EventName          string
	DateEntries        []DateEntry
	Amenities          []string
	TotalAmount        float64
	DiscountPercentage *float64
	DiscountAmount     *float64
	RejectReason       *string
	RefundAmount       *float64
	Status             Status
}

type ApprovalDecision struct {
	Status             Status
	DiscountPercentage *float64
	DiscountAmount     *float64
	RejectReason       *string
	Notification       Notification
}

type CancellationDecision struct {
	Status           Status
	RefundPercentage float64
	RefundAmount     float64
	HoursUntil       int
	// Changed is false when the booking was left as it was.
	Changed bool
}
