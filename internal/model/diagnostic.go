package model

import (
	"time"

	"gorm.io/datatypes"
)

type DiagnosticTest struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	StudentID         string         `gorm:"type:varchar(36);not null;index" json:"student_id"`
	Subject           string         `gorm:"type:varchar(50)" json:"subject"`
	TestType          string         `gorm:"type:varchar(50);default:'adaptive'" json:"test_type"`
	QuestionsAnswered datatypes.JSON `json:"questions_answered"`
	Responses         datatypes.JSON `json:"responses"`
	AbilityEstimate   *float64       `json:"ability_estimate,omitempty"`
	RecommendedTopics datatypes.JSON `json:"recommended_topics"`
	TestDuration      int            `json:"test_duration"`
	CreatedAt         time.Time      `json:"created_at"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
}
