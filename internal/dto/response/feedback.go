package response

import (
	"time"

	"auditorium-booking/internal/data/entity"
)

type FeedbackResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	AuditoriumID   string    `json:"auditorium_id"`
	AuditoriumName string    `json:"auditorium_name,omitempty"`
	FeedbackText   string    `json:"feedback_text"`
	CreatedAt      time.Time `json:"created_at"`
}

func FeedbackToResponse(f *entity.FeedbackDetail) FeedbackResponse {
	return FeedbackResponse{
		ID:             f.ID.String(),
		UserID:         f.UserID.String(),
		UserName:       f.UserName,
		AuditoriumID:   f.AuditoriumID.String(),
		AuditoriumName: f.AuditoriumName,
		FeedbackText:   f.Text,
		CreatedAt:      f.CreatedAt,
	}
}
