package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeShortAnswer    = "short_answer"
	QuestionTypeEssay          = "essay"
)

type Question struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TopicID         uint           `gorm:"not null;index" json:"topic_id"`
	QuestionText    string         `gorm:"type:text;not null" json:"question_text"`
	QuestionType    string         `gorm:"not null" json:"question_type"` // "multiple_choice", "short_answer", "essay"
	Options         datatypes.JSON `json:"options,omitempty"`             // JSON array, multiple_choice only
	CorrectAnswer   string         `gorm:"not null" json:"correct_answer"`
	Explanation     string         `gorm:"type:text" json:"explanation,omitempty"`
	DifficultyLevel int            `gorm:"not null;default:1;index" json:"difficulty_level"`
	Points          int            `gorm:"not null;default:10" json:"points"`
	ExamType        string         `gorm:"index" json:"exam_type,omitempty"` // "SAT", "ACT", "AP", "STATE", "GENERAL"
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionList decodes the stored option array. Questions without options yield nil.
func (q *Question) OptionList() ([]string, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil, err
	}
	return options, nil
}
