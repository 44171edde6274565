package request

type CreateFeedbackRequest struct {
	AuditoriumID string `json:"auditorium_id" validate:"required,uuid"`
	FeedbackText string `json:"feedback_text" validate:"required,notblank,max=1000"`
}
