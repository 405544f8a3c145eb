package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt has at most one non-void, unsubmitted row per (UserID, QuizID).
// Starting a quiz voids any open attempt before creating a fresh one.
type QuizAttempt struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"not null;index" json:"user_id"`
	QuizID      uuid.UUID  `gorm:"not null;index" json:"quiz_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       *int       `json:"score"`
	Submitted   bool       `gorm:"not null;default:false" json:"submitted"`
	Void        bool       `gorm:"not null;default:false" json:"void"`

	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Quiz    Quiz     `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	Answers []Answer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}
