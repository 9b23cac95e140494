package repository

import (
	"context"
	"time"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeRepository interface {
	WithTx(tx *gorm.DB) KnowledgeRepository
	FindNodesBySubject(ctx context.Context, subject string) ([]model.KnowledgeNode, error)
	FindNodesByTopic(ctx context.Context, subject, topic string) ([]model.KnowledgeNode, error)
	FindMastery(ctx context.Context, studentID, subject string) ([]model.KnowledgeMastery, error)
	// UpsertMastery overwrites level, confidence and practice data for the (student, node) pair.
	UpsertMastery(ctx context.Context, mastery *model.KnowledgeMastery) error
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) WithTx(tx *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: tx}
}

func (r *knowledgeRepository) FindNodesBySubject(ctx context.Context, subject string) ([]model.KnowledgeNode, error) {
	var nodes []model.KnowledgeNode
	err := r.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("difficulty_level ASC").Order("topic ASC").
		Find(&nodes).Error
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *knowledgeRepository) FindNodesByTopic(ctx context.Context, subject, topic string) ([]model.KnowledgeNode, error) {
	var nodes []model.KnowledgeNode
	if err := r.db.WithContext(ctx).Where("subject = ? AND topic = ?", subject, topic).Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *knowledgeRepository) FindMastery(ctx context.Context, studentID, subject string) ([]model.KnowledgeMastery, error) {
	var mastery []model.KnowledgeMastery
	err := r.db.WithContext(ctx).
		Joins("JOIN knowledge_graph kg ON kg.id = student_knowledge_mastery.knowledge_node_id").
		Where("student_knowledge_mastery.student_id = ? AND kg.subject = ?", studentID, subject).
		Find(&mastery).Error
	if err != nil {
		return nil, err
	}
	return mastery, nil
}

func (r *knowledgeRepository) UpsertMastery(ctx context.Context, mastery *model.KnowledgeMastery) error {
	if mastery.LastPracticed == nil {
		now := time.Now()
		mastery.LastPracticed = &now
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "knowledge_node_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mastery_level", "confidence_score", "last_practiced", "practice_count",
		}),
	}).Create(mastery).Error
}
