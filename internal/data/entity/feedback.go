package entity

import (
	"github.com/google/uuid"
)

type Feedback struct {
	BaseSimple
	UserID       uuid.UUID `db:"user_id"`
	AuditoriumID uuid.UUID `db:"auditorium_id"`
	Text         string    `db:"feedback_text"`
}

type FeedbackDetail struct {
	Feedback
	UserName       string `db:"user_name"`
	AuditoriumName string `db:"auditorium_name"`
}
