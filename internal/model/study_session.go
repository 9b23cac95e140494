package model

import "time"

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

type StudySession struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	StudentID         string     `gorm:"type:varchar(36);not null;index" json:"student_id"`
	SessionType       string     `gorm:"not null" json:"session_type"` // "practice", "exam", "review"
	SubjectID         *uint      `json:"subject_id,omitempty"`
	TopicID           *uint      `json:"topic_id,omitempty"`
	QuestionsAnswered int        `gorm:"not null;default:0" json:"questions_answered"`
	CorrectAnswers    int        `gorm:"not null;default:0" json:"correct_answers"`
	PointsEarned      int        `gorm:"not null;default:0" json:"points_earned"`
	SessionDuration   *int       `json:"session_duration,omitempty"` // seconds
	StartedAt         time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Status is derived from the completion timestamp; abandoned sessions stay open.
func (s *StudySession) Status() string {
	if s.CompletedAt == nil {
		return SessionStatusOpen
	}
	return SessionStatusClosed
}
