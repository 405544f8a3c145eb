package models

import "github.com/google/uuid"

type QuestionOption struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	QuestionID uuid.UUID `gorm:"not null" json:"question_id"`
}
