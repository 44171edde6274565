package entity

import "auditorium-booking/internal/lifecycle"

type Amenity struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type Auditorium struct {
	Base
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Capacity     int       `db:"capacity"`
	Location     string    `db:"location"`
	PricePerHour float64   `db:"price_per_hour"`
	OpenTime     string    `db:"open_time"`  // HH:MM
	CloseTime    string    `db:"close_time"` // HH:MM
	Amenities    []Amenity `db:"amenities"`
}

// AmenityCost looks an amenity up by name.
func (a *Auditorium) AmenityCost(name string) (float64, bool) {
	for _, am := range a.Amenities {
		if am.Name == name {
			return am.Cost, true
		}
	}
	return 0, false
}

// OpeningHours is the daily window bookings must fit in.
func (a *Auditorium) OpeningHours() (lifecycle.Slot, error) {
	return lifecycle.ParseSlot(a.OpenTime + " - " + a.CloseTime)
}
