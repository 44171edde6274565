package lifecycle

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

type Kind string

const (
	KindApproved  Kind = "approved"
	KindRejected  Kind = "rejected"
	KindCancelled Kind = "cancelled"
)

type Notification struct {
	Recipient   string
	Kind        Kind
	Subject     string
	Body        string
	MergedDates []MergedSlot
}

// MergedSlot is a date or "start - end" date label with the span booked on it.
type MergedSlot struct {
	Label string
	Span  string
}

func (m MergedSlot) String() string {
	return m.Label + ": " + m.Span
}

// Amounts feeds the money lines of a notification. Nil fields are omitted.
type Amounts struct {
	Total   float64
	Payable *float64
	Refund  *float64
}

// MergeTimeSlots collapses each day to "<first start> to <last end>". Days of
// one date_range entry share a single range label; separate entries stay
// separate even when they are adjacent.
func MergeTimeSlots(days iter.Seq[DaySlots]) []MergedSlot {
	all := slices.Collect(days)
	slices.SortStableFunc(all, func(a, b DaySlots) int {
		return a.Date.Compare(b.Date)
	})

	var (
		out   []MergedSlot
		first DaySlots
		last  DaySlots
		open  bool
	)
	flush := func() {
		if !open {
			return
		}
		label := first.Date.Format(DateLayout)
		if !last.Date.Equal(first.Date) {
			label += " - " + last.Date.Format(DateLayout)
		}
		out = append(out, MergedSlot{Label: label, Span: span(first.Slots)})
	}

	for _, day := range all {
		if len(day.Slots) == 0 {
			continue
		}
		if open && day.Entry == last.Entry && day.Date.Equal(last.Date.AddDate(0, 0, 1)) {
			last = day
			continue
		}
		flush()
		first, last, open = day, day, true
	}
	flush()

	return out
}

func span(slots []Slot) string {
	return formatClock(slots[0].Start) + " to " + formatClock(slots[len(slots)-1].End)
}

// FormatNotification renders the subject and plain-text body for kind.
func FormatNotification(kind Kind, eventName string, merged []MergedSlot, discount *float64, amounts Amounts, reason *string) (string, string) {
	var b strings.Builder

	var subject string
	switch kind {
	case KindApproved:
		subject = fmt.Sprintf("Booking approved: %s", eventName)
		fmt.Fprintf(&b, "Your booking request for %q has been approved.\n", eventName)
	case KindRejected:
		subject = fmt.Sprintf("Booking rejected: %s", eventName)
		fmt.Fprintf(&b, "Your booking request for %q has been rejected.\n", eventName)
	case KindCancelled:
		subject = fmt.Sprintf("Booking cancelled: %s", eventName)
		fmt.Fprintf(&b, "Your booking for %q has been cancelled.\n", eventName)
	default:
		subject = fmt.Sprintf("Booking update: %s", eventName)
		fmt.Fprintf(&b, "Your booking for %q has been updated.\n", eventName)
	}

	if len(merged) > 0 {
		b.WriteString("\nSchedule:\n")
		for _, m := range merged {
			fmt.Fprintf(&b, "  %s\n", m)
		}
	}

	switch kind {
	case KindApproved:
		fmt.Fprintf(&b, "\nTotal amount: %.2f\n", amounts.Total)
		if discount != nil {
			fmt.Fprintf(&b, "Discount: %s%%\n", strconv.FormatFloat(*discount, 'f', -1, 64))
		}
		if amounts.Payable != nil {
			fmt.Fprintf(&b, "Amount payable: %.2f\n", *amounts.Payable)
		}
		b.WriteString("\nPlease complete the payment within 24 hours to confirm your booking.\n")
	case KindRejected:
		if reason != nil {
			fmt.Fprintf(&b, "\nReason: %s\n", *reason)
		}
	case KindCancelled:
		if amounts.Refund != nil {
			fmt.Fprintf(&b, "\nRefund amount: %.2f\n", *amounts.Refund)
		}
	}

	return subject, b.String()
}

// CancellationNotice builds the notice sent after a cancellation decision.
func CancellationNotice(b Booking, d CancellationDecision, recipient string) (Notification, error) {
	days, err := ExpandDateEntries(b.DateEntries)
	if err != nil {
		return Notification{}, err
	}
	merged := MergeTimeSlots(days)
	refund := d.RefundAmount
	subject, body := FormatNotification(KindCancelled, b.EventName, merged, nil, Amounts{
		Total:  b.TotalAmount,
		Refund: &refund,
	}, nil)

	return Notification{
		Recipient:   recipient,
		Kind:        KindCancelled,
		Subject:     subject,
		Body:        body,
		MergedDates: merged,
	}, nil
}
