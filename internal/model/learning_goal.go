package model

import "time"

type LearningGoal struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	StudentID    string     `gorm:"type:varchar(36);not null;index" json:"student_id"`
	GoalType     string     `gorm:"not null" json:"goal_type"` // "exam_score", "topic_mastery", "weekly_practice"
	TargetValue  string     `gorm:"not null" json:"target_value"`
	CurrentValue string     `gorm:"default:'0'" json:"current_value"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	IsCompleted  bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt    time.Time  `json:"created_at"`
}
