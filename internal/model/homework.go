package model

import (
	"time"

	"gorm.io/datatypes"
)

type HomeworkHelpSession struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	StudentID       string         `gorm:"type:varchar(36);not null;index" json:"student_id"`
	QuestionText    string         `gorm:"type:text;not null" json:"question_text"`
	QuestionImage   []byte         `json:"-"`
	Subject         string         `gorm:"type:varchar(50)" json:"subject"`
	QuestionType    string         `gorm:"type:varchar(50);default:'text'" json:"question_type"`
	AIResponse      string         `gorm:"type:text" json:"ai_response"`
	StepsGuidance   datatypes.JSON `json:"steps_guidance"`
	RelatedConcepts datatypes.JSON `json:"related_concepts"`
	DifficultyLevel int            `gorm:"default:1" json:"difficulty_level"`
	SessionDuration *int           `json:"session_duration,omitempty"`
	StudentRating   *int           `json:"student_rating,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
}
