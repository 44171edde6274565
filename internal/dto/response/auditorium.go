package response

import (
	"time"

	"auditorium-booking/internal/data/entity"
)

type AuditoriumResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Capacity     int              `json:"capacity"`
	Location     string           `json:"location"`
	PricePerHour float64          `json:"price_per_hour"`
	OpenTime     string           `json:"open_time"`
	CloseTime    string           `json:"close_time"`
	Amenities    []entity.Amenity `json:"amenities"`
	CreatedAt    time.Time        `json:"created_at"`
}

type PriceResponse struct {
	AuditoriumID string           `json:"auditorium_id"`
	PricePerHour float64          `json:"price_per_hour"`
	Amenities    []entity.Amenity `json:"amenities"`
}

func AuditoriumToResponse(a *entity.Auditorium) AuditoriumResponse {
	amenities := a.Amenities
	if amenities == nil {
		amenities = []entity.Amenity{}
	}
	return AuditoriumResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		Description:  a.Description,
		Capacity:     a.Capacity,
		Location:     a.Location,
		PricePerHour: a.PricePerHour,
		OpenTime:     a.OpenTime,
		CloseTime:    a.CloseTime,
		Amenities:    amenities,
		CreatedAt:    a.CreatedAt,
	}
}
