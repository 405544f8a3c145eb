package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID uuid.UUID `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"course_id"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`
}
