package request

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,notblank,min=2,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,numeric,min=10,max=15"`
}
