package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type DiagnosticRepository interface {
	WithTx(tx *gorm.DB) DiagnosticRepository
	Create(ctx context.Context, test *model.DiagnosticTest) error
	FindForStudent(ctx context.Context, id uint, studentID string) (*model.DiagnosticTest, error)
	Update(ctx context.Context, test *model.DiagnosticTest) error
}

type diagnosticRepository struct {
	db *gorm.DB
}

func NewDiagnosticRepository(db *gorm.DB) DiagnosticRepository {
	return &diagnosticRepository{db: db}
}

func (r *diagnosticRepository) WithTx(tx *gorm.DB) DiagnosticRepository {
	return &diagnosticRepository{db: tx}
}

func (r *diagnosticRepository) Create(ctx context.Context, test *model.DiagnosticTest) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *diagnosticRepository) FindForStudent(ctx context.Context, id uint, studentID string) (*model.DiagnosticTest, error) {
	var test model.DiagnosticTest
	err := r.db.WithContext(ctx).Where("id = ? AND student_id = ?", id, studentID).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *diagnosticRepository) Update(ctx context.Context, test *model.DiagnosticTest) error {
	return r.db.WithContext(ctx).Save(test).Error
}
