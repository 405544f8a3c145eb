package models

import "github.com/google/uuid"

// Answer rows are written in one batch when an attempt is finalized and never
// updated afterwards.
type Answer struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionID       uuid.UUID  `gorm:"not null" json:"question_id"`
	AttemptID        uuid.UUID  `gorm:"not null;index" json:"attempt_id"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id"`
	Text             *string    `gorm:"type:text" json:"text"`
	Feedback         string     `gorm:"type:text" json:"feedback"`

	Question Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
}
