package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository
	Create(ctx context.Context, attempt *model.Attempt) error
	FindByStudent(ctx context.Context, studentID string, limit int) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) FindByStudent(ctx context.Context, studentID string, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	query := r.db.WithContext(ctx).Preload("Question").
		Where("student_id = ?", studentID).
		Order("attempt_date DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
