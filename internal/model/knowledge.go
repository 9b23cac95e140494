package model

import (
	"time"

	"gorm.io/datatypes"
)

// KnowledgeNode is one topic of a subject's knowledge graph. Edges are stored as topic-name lists.
type KnowledgeNode struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Subject            string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_knowledge_subject_topic" json:"subject"`
	Topic              string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_knowledge_subject_topic" json:"topic"`
	PrerequisiteTopics datatypes.JSON `json:"prerequisite_topics"`
	RelatedTopics      datatypes.JSON `json:"related_topics"`
	DifficultyLevel    int            `gorm:"default:1" json:"difficulty_level"`
	MasteryThreshold   float64        `gorm:"default:0.8" json:"mastery_threshold"`
	Description        string         `gorm:"type:text" json:"description"`
	LearningObjectives datatypes.JSON `json:"learning_objectives"`
	CreatedAt          time.Time      `json:"created_at"`
}

func (KnowledgeNode) TableName() string { return "knowledge_graph" }

type KnowledgeMastery struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	StudentID       string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_mastery_student_node" json:"student_id"`
	KnowledgeNodeID uint       `gorm:"not null;uniqueIndex:idx_mastery_student_node" json:"knowledge_node_id"`
	MasteryLevel    float64    `gorm:"default:0" json:"mastery_level"`
	LastPracticed   *time.Time `json:"last_practiced,omitempty"`
	PracticeCount   int        `gorm:"default:0" json:"practice_count"`
	CorrectCount    int        `gorm:"default:0" json:"correct_count"`
	ConfidenceScore float64    `gorm:"default:0" json:"confidence_score"`
}

func (KnowledgeMastery) TableName() string { return "student_knowledge_mastery" }
