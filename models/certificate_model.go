package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"not null;index" json:"user_id"`
	QuizID         uuid.UUID `gorm:"not null" json:"quiz_id"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	Score          int       `gorm:"not null" json:"score"`
	CertificateURL string    `gorm:"size:255;not null" json:"certificate_url"`
	IssuedAt       time.Time `gorm:"not null" json:"issued_at"`
}
