package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type HomeworkRepository interface {
	WithTx(tx *gorm.DB) HomeworkRepository
	Create(ctx context.Context, session *model.HomeworkHelpSession) error
	FindHistory(ctx context.Context, studentID string, limit, offset int) ([]model.HomeworkHelpSession, error)
	// Rate sets the rating on a session owned by studentID and reports whether a row matched.
	Rate(ctx context.Context, id uint, studentID string, rating int) (bool, error)
}

type homeworkRepository struct {
	db *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) HomeworkRepository {
	return &homeworkRepository{db: db}
}

func (r *homeworkRepository) WithTx(tx *gorm.DB) HomeworkRepository {
	return &homeworkRepository{db: tx}
}

func (r *homeworkRepository) Create(ctx context.Context, session *model.HomeworkHelpSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *homeworkRepository) FindHistory(ctx context.Context, studentID string, limit, offset int) ([]model.HomeworkHelpSession, error) {
	var sessions []model.HomeworkHelpSession
	err := r.db.WithContext(ctx).
		Select("id", "question_text", "subject", "created_at", "student_rating").
		Where("student_id = ?", studentID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *homeworkRepository) Rate(ctx context.Context, id uint, studentID string, rating int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.HomeworkHelpSession{}).
		Where("id = ? AND student_id = ?", id, studentID).
		UpdateColumn("student_rating", rating)
	return res.RowsAffected > 0, res.Error
}
