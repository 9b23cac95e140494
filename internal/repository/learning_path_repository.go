package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LearningPathRepository interface {
	FindActive(ctx context.Context, studentID, subject string) (*model.LearningPath, error)
	// CreateActive inserts the path unless the student already has an active one for the subject.
	CreateActive(ctx context.Context, path *model.LearningPath) (bool, error)
}

type learningPathRepository struct {
	db *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) LearningPathRepository {
	return &learningPathRepository{db: db}
}

func (r *learningPathRepository) FindActive(ctx context.Context, studentID, subject string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject = ? AND is_active = ?", studentID, subject, true).
		Order("created_at DESC").
		First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *learningPathRepository) CreateActive(ctx context.Context, path *model.LearningPath) (bool, error) {
	path.IsActive = true
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(path)
	return res.RowsAffected == 1, res.Error
}
