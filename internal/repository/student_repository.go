package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	WithTx(tx *gorm.DB) StudentRepository
	Create(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id string) (*model.Student, error)
	FindByUsername(ctx context.Context, username string) (*model.Student, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// AddPoints increments total_points in a single statement.
	AddPoints(ctx context.Context, id string, points int) error
	// DeductPoints subtracts points only when the balance covers them; false means nothing changed.
	DeductPoints(ctx context.Context, id string, points int) (bool, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) WithTx(tx *gorm.DB) StudentRepository {
	return &studentRepository{db: tx}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByUsername(ctx context.Context, username string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *studentRepository) AddPoints(ctx context.Context, id string, points int) error {
	return r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ?", id).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", points)).Error
}

func (r *studentRepository) DeductPoints(ctx context.Context, id string, points int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ? AND total_points >= ?", id, points).
		UpdateColumn("total_points", gorm.Expr("total_points - ?", points))
	return res.RowsAffected == 1, res.Error
}
