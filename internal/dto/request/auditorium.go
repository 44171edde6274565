package request

type AmenityRequest struct {
	Name string  `json:"name" validate:"required,notblank,max=100"`
	Cost float64 `json:"cost" validate:"gte=0"`
}

type CreateAuditoriumRequest struct {
	Name         string           `json:"name" validate:"required,notblank,max=150"`
	Description  string           `json:"description" validate:"max=2000"`
	Capacity     int              `json:"capacity" validate:"required,min=1"`
	Location     string           `json:"location" validate:"required,notblank,max=255"`
	PricePerHour float64          `json:"price_per_hour" validate:"gte=0"`
	OpenTime     string           `json:"open_time" validate:"required,datetime=15:04"`
	CloseTime    string           `json:"close_time" validate:"required,datetime=15:04"`
	Amenities    []AmenityRequest `json:"amenities" validate:"omitempty,dive"`
}

// UpdateAuditoriumRequest changes only the fields that are set.
type UpdateAuditoriumRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,notblank,max=150"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Capacity     *int             `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Location     *string          `json:"location,omitempty" validate:"omitempty,notblank,max=255"`
	PricePerHour *float64         `json:"price_per_hour,omitempty" validate:"omitempty,gte=0"`
	OpenTime     *string          `json:"open_time,omitempty" validate:"omitempty,datetime=15:04"`
	CloseTime    *string          `json:"close_time,omitempty" validate:"omitempty,datetime=15:04"`
	Amenities    []AmenityRequest `json:"amenities,omitempty" validate:"omitempty,dive"`
}

type AuditoriumListRequest struct {
	PaginatedRequest
	Search *string
}
