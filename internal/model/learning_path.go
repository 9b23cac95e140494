package model

import (
	"time"

	"gorm.io/datatypes"
)

// LearningPath is a generated study plan. A student has at most one active path per subject.
type LearningPath struct {
	ID                      uint           `gorm:"primarykey" json:"id"`
	StudentID               string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_path_active_student_subject,where:is_active = true" json:"student_id"`
	Subject                 string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_path_active_student_subject,where:is_active = true" json:"subject"`
	PathName                string         `gorm:"type:varchar(100)" json:"path_name"`
	TargetGoals             datatypes.JSON `json:"target_goals"`
	CurrentPosition         int            `gorm:"default:0" json:"current_position"`
	PathStructure           datatypes.JSON `json:"path_structure"`
	EstimatedCompletionTime int            `json:"estimated_completion_time"` // minutes
	IsActive                bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt               time.Time      `json:"created_at"`
}
