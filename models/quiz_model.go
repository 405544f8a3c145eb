package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	TimeLimit    *int      `json:"time_limit"`
	PassingScore *int      `json:"passing_score"`
	CourseID     uuid.UUID `gorm:"not null" json:"course_id"`

	Course    Course        `gorm:"foreignKey:CourseID" json:"-"`
	Questions []Question    `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Attempts  []QuizAttempt `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
