package model

import (
	"time"

	"gorm.io/gorm"
)

type Subject struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null;uniqueIndex" json:"name"` // "Mathematics", "Science", ...
	GradeLevel  string         `gorm:"not null" json:"grade_level"`
	Description string         `json:"description,omitempty"`
	Topics      []Topic        `gorm:"foreignKey:SubjectID" json:"topics,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Topic struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	SubjectID       uint           `gorm:"not null;index" json:"subject_id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description,omitempty"`
	DifficultyLevel int            `gorm:"not null;default:1" json:"difficulty_level"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
