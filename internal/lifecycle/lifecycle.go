package lifecycle

import (
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"auditorium-booking/internal/apperror"
)

// DecideApproval applies an admin decision to a pending booking and builds the
// notice for the requester.
func DecideApproval(b Booking, action Action, discount *float64, reason *string, recipient string) (ApprovalDecision, error) {
	if b.Status != StatusPending {
		return ApprovalDecision{}, fmt.Errorf("%w: booking %s is %s, only pending bookings can be reviewed",
			apperror.ErrConflict, b.ID, b.Status)
	}

	days, err := ExpandDateEntries(b.DateEntries)
	if err != nil {
		return ApprovalDecision{}, err
	}
	merged := MergeTimeSlots(days)

	var decision ApprovalDecision
	var kind Kind
	switch action {
	case ActionApprove:
		if discount == nil {
			return ApprovalDecision{}, fmt.Errorf("%w: discount is required to approve", apperror.ErrValidation)
		}
		d := *discount
		if math.IsNaN(d) || d < 0 || d > 100 {
			return ApprovalDecision{}, fmt.Errorf("%w: discount must be between 0 and 100", apperror.ErrValidation)
		}
		payable := RoundCurrency(b.TotalAmount * (1 - d/100))
		decision = ApprovalDecision{
			Status:             StatusApproved,
			DiscountPercentage: &d,
			DiscountAmount:     &payable,
		}
		kind = KindApproved

	case ActionReject:
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return ApprovalDecision{}, fmt.Errorf("%w: reason is required to reject", apperror.ErrValidation)
		}
		r := strings.TrimSpace(*reason)
		decision = ApprovalDecision{
			Status:       StatusRejected,
			RejectReason: &r,
		}
		kind = KindRejected

	default:
		return ApprovalDecision{}, fmt.Errorf("%w: unknown action %q", apperror.ErrValidation, action)
	}

	subject, body := FormatNotification(kind, b.EventName, merged, decision.DiscountPercentage, Amounts{
		Total:   b.TotalAmount,
		Payable: decision.DiscountAmount,
	}, decision.RejectReason)

	decision.Notification = Notification{
		Recipient:   recipient,
		Kind:        kind,
		Subject:     subject,
		Body:        body,
		MergedDates: merged,
	}
	return decision, nil
}

// RefundPercentage is the share of the paid amount returned when a booking is
// cancelled hoursUntil whole hours before it starts.
func RefundPercentage(status Status, hoursUntil int) float64 {
	if status == StatusRejected {
		return 100
	}
	switch {
	case hoursUntil < 6:
		return 0
	case hoursUntil < 12:
		return 30
	case hoursUntil < 24:
		return 50
	default:
		return 100
	}
}

// ComputeCancellation decides the outcome of a cancel request at now. Slot
// times are read in now's location.
func ComputeCancellation(b Booking, now time.Time) (CancellationDecision, error) {
	if b.Status.IsTerminal() {
		return unchanged(b), nil
	}
	if b.Status != StatusApproved && b.Status != StatusRejected {
		return CancellationDecision{}, fmt.Errorf("%w: a %s booking cannot be cancelled",
			apperror.ErrValidation, b.Status)
	}

	earliest, latest, err := bookingBounds(b, now.Location())
	if err != nil {
		return CancellationDecision{}, err
	}

	if now.After(latest) {
		return CancellationDecision{Status: StatusComplete, Changed: true}, nil
	}

	hours := int(math.Floor(earliest.Sub(now).Hours()))
	pct := RefundPercentage(b.Status, hours)

	base := b.TotalAmount
	if b.DiscountAmount != nil {
		base = *b.DiscountAmount
	}

	return CancellationDecision{
		Status:           StatusCancelled,
		RefundPercentage: pct,
		RefundAmount:     RoundCurrency(base * pct / 100),
		HoursUntil:       hours,
		Changed:          true,
	}, nil
}

// CompleteIfElapsed moves a pending or approved booking whose last slot has
// ended to complete.
func CompleteIfElapsed(b Booking, now time.Time) (CancellationDecision, error) {
	if b.Status != StatusPending && b.Status != StatusApproved {
		return unchanged(b), nil
	}

	_, latest, err := bookingBounds(b, now.Location())
	if err != nil {
		return CancellationDecision{}, err
	}
	if !now.After(latest) {
		return unchanged(b), nil
	}
	return CancellationDecision{Status: StatusComplete, Changed: true}, nil
}

func unchanged(b Booking) CancellationDecision {
	d := CancellationDecision{Status: b.Status}
	if b.RefundAmount != nil {
		d.RefundAmount = *b.RefundAmount
	}
	return d
}

func bookingBounds(b Booking, loc *time.Location) (time.Time, time.Time, error) {
	days, err := ExpandDateEntries(b.DateEntries)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return Bounds(days, loc)
}

// ComputeTotalAmount prices the booked hours at pricePerHour and adds each
// amenity cost once.
func ComputeTotalAmount(days iter.Seq[DaySlots], pricePerHour float64, amenityCosts []float64) float64 {
	var hours float64
	for day := range days {
		for _, s := range day.Slots {
			hours += s.Hours()
		}
	}

	total := hours * pricePerHour
	for _, c := range amenityCosts {
		total += c
	}
	return RoundCurrency(total)
}

func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
