package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type LearningGoalRepository interface {
	Create(ctx context.Context, goal *model.LearningGoal) error
	FindByStudent(ctx context.Context, studentID string) ([]model.LearningGoal, error)
}

type learningGoalRepository struct {
	db *gorm.DB
}

func NewLearningGoalRepository(db *gorm.DB) LearningGoalRepository {
	return &learningGoalRepository{db: db}
}

func (r *learningGoalRepository) Create(ctx context.Context, goal *model.LearningGoal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *learningGoalRepository) FindByStudent(ctx context.Context, studentID string) ([]model.LearningGoal, error) {
	var goals []model.LearningGoal
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").Order("id DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}
