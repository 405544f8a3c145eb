package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeShortAnswer    = "SHORT_ANSWER"
	QuestionTypeEssay          = "ESSAY"
)

// IsObjective reports whether the type is graded by exact option match.
func IsObjective(questionType string) bool {
	return questionType == QuestionTypeMultipleChoice || questionType == QuestionTypeTrueFalse
}

// IsFreeText reports whether the type is graded against key points by the AI grader.
func IsFreeText(questionType string) bool {
	return questionType == QuestionTypeShortAnswer || questionType == QuestionTypeEssay
}

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Text   string    `gorm:"type:text;not null" json:"text"`
	Type   string    `gorm:"size:50;not null;default:'MULTIPLE_CHOICE'" json:"type"`
	Points int       `gorm:"not null;default:1" json:"points"`
	QuizID uuid.UUID `gorm:"not null" json:"quiz_id"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
