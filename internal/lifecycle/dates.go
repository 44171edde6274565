package lifecycle

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"auditorium-booking/internal/apperror"
)

const DateLayout = "2006-01-02"

// MaxRangeDays caps the calendar days a single date_range may span.
const MaxRangeDays = 366

// Slot is a half-open interval of the day, stored as offsets from midnight.
type Slot struct {
	Start time.Duration
	End   time.Duration
}

func (s Slot) Hours() float64 {
	return (s.End - s.Start).Hours()
}

func (s Slot) Overlaps(o Slot) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Slot) String() string {
	return formatClock(s.Start) + " - " + formatClock(s.End)
}

// ParseSlot accepts "HH:MM - HH:MM" with or without spaces around the dash.
func ParseSlot(raw string) (Slot, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return Slot{}, fmt.Errorf("%w: malformed time slot %q", apperror.ErrValidation, raw)
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return Slot{}, fmt.Errorf("%w: malformed slot start %q", apperror.ErrValidation, raw)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return Slot{}, fmt.Errorf("%w: malformed slot end %q", apperror.ErrValidation, raw)
	}
	if end <= start {
		return Slot{}, fmt.Errorf("%w: slot %q must end after it starts", apperror.ErrValidation, raw)
	}

	return Slot{Start: start, End: end}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// DaySlots is one calendar day of a booking with its sorted slots. Entry is
// the index of the date entry the day came from.
type DaySlots struct {
	Date  time.Time
	Slots []Slot
	Entry int
}

// At places a clock offset on this day in loc.
func (d DaySlots) At(offset time.Duration, loc *time.Location) time.Time {
	y, m, day := d.Date.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc).Add(offset)
}

type parsedEntry struct {
	index int
	start time.Time
	end   time.Time
	slots []Slot
}

// ExpandDateEntries turns date entries into one DaySlots per calendar day.
// Parsing happens up front so malformed data fails here; the returned
// sequence holds no iterator state and can be ranged over any number of times.
func ExpandDateEntries(entries []DateEntry) (iter.Seq[DaySlots], error) {
	parsed := make([]parsedEntry, 0, len(entries))
	for i, e := range entries {
		p, err := parseEntry(e)
		if err != nil {
			return nil, fmt.Errorf("date entry %d: %w", i, err)
		}
		p.index = i
		if len(p.slots) == 0 {
			continue
		}
		parsed = append(parsed, p)
	}

	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: booking has no valid time slots", apperror.ErrValidation)
	}

	slices.SortStableFunc(parsed, func(a, b parsedEntry) int {
		return a.start.Compare(b.start)
	})

	return func(yield func(DaySlots) bool) {
		for _, p := range parsed {
			for d := p.start; !d.After(p.end); d = d.AddDate(0, 0, 1) {
				if !yield(DaySlots{Date: d, Slots: slices.Clone(p.slots), Entry: p.index}) {
					return
				}
			}
		}
	}, nil
}

func parseEntry(e DateEntry) (parsedEntry, error) {
	hasDate := strings.TrimSpace(e.Date) != ""
	hasRange := e.DateRange != nil

	var p parsedEntry
	switch {
	case hasDate && hasRange:
		return p, fmt.Errorf("%w: entry has both date and date_range", apperror.ErrValidation)
	case !hasDate && !hasRange:
		return p, fmt.Errorf("%w: entry has neither date nor date_range", apperror.ErrValidation)
	case hasDate:
		d, err := parseDate(e.Date)
		if err != nil {
			return p, err
		}
		p.start, p.end = d, d
	default:
		start, err := parseDate(e.DateRange.Start)
		if err != nil {
			return p, err
		}
		end, err := parseDate(e.DateRange.End)
		if err != nil {
			return p, err
		}
		if end.Before(start) {
			return p, fmt.Errorf("%w: date range %s - %s ends before it starts",
				apperror.ErrValidation, e.DateRange.Start, e.DateRange.End)
		}
		if end.Sub(start) >= MaxRangeDays*24*time.Hour {
			return p, fmt.Errorf("%w: date range %s - %s exceeds %d days",
				apperror.ErrValidation, e.DateRange.Start, e.DateRange.End, MaxRangeDays)
		}
		p.start, p.end = start, end
	}

	seen := make(map[Slot]struct{}, len(e.TimeSlots))
	for _, raw := range e.TimeSlots {
		s, err := ParseSlot(raw)
		if err != nil {
			return p, err
		}
		if _, dup := seen[s]; dup {
			return p, fmt.Errorf("%w: duplicate time slot %q", apperror.ErrValidation, raw)
		}
		seen[s] = struct{}{}
		p.slots = append(p.slots, s)
	}
	slices.SortFunc(p.slots, func(a, b Slot) int {
		return int(a.Start - b.Start)
	})

	return p, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", apperror.ErrValidation, s)
	}
	return d, nil
}

// Bounds returns the earliest slot start and latest slot end across days, in loc.
func Bounds(days iter.Seq[DaySlots], loc *time.Location) (earliest, latest time.Time, err error) {
	found := false
	for day := range days {
		for _, s := range day.Slots {
			start := day.At(s.Start, loc)
			end := day.At(s.End, loc)
			if !found || start.Before(earliest) {
				earliest = start
			}
			if !found || end.After(latest) {
				latest = end
			}
			found = true
		}
	}
	if !found {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: no parsable time slot", apperror.ErrValidation)
	}
	return earliest, latest, nil
}
