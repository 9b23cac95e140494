package model

import "time"

// Attempt is written once per answer submission and never updated.
type Attempt struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	StudentID     string    `gorm:"type:varchar(36);not null;index" json:"student_id"`
	QuestionID    uint      `gorm:"not null;index" json:"question_id"`
	Question      Question  `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	StudentAnswer string    `gorm:"type:text" json:"student_answer"`
	IsCorrect     bool      `gorm:"not null" json:"is_correct"`
	TimeSpent     int       `json:"time_spent"` // seconds
	AttemptDate   time.Time `gorm:"autoCreateTime" json:"attempt_date"`
}

func (Attempt) TableName() string { return "student_attempts" }
