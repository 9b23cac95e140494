package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `gorm:"not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	GradeLevel   string    `gorm:"not null" json:"grade_level"`
	TotalPoints  int       `gorm:"not null;default:0" json:"total_points"`
	Level        int       `gorm:"not null;default:1" json:"level"` // display only, never derived here
	PetName      string    `gorm:"default:'Buddy'" json:"pet_name"`
	PetType      string    `gorm:"default:'dragon'" json:"pet_type"`
	PetLevel     int       `gorm:"default:1" json:"pet_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when the caller did not pick an id.
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
