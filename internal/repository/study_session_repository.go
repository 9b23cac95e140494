package repository

import (
	"context"
	"time"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

// SessionSummary is the aggregate written once when a practice run ends.
type SessionSummary struct {
	QuestionsAnswered int
	CorrectAnswers    int
	PointsEarned      int
	DurationSeconds   int
}

type StudySessionRepository interface {
	Create(ctx context.Context, session *model.StudySession) error
	FindByID(ctx context.Context, id uint) (*model.StudySession, error)
	// Complete writes the summary for a session owned by studentID and reports whether a row matched.
	Complete(ctx context.Context, id uint, studentID string, summary SessionSummary, completedAt time.Time) (bool, error)
}

type studySessionRepository struct {
	db *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) StudySessionRepository {
	return &studySessionRepository{db: db}
}

func (r *studySessionRepository) Create(ctx context.Context, session *model.StudySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *studySessionRepository) FindByID(ctx context.Context, id uint) (*model.StudySession, error) {
	var session model.StudySession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *studySessionRepository) Complete(ctx context.Context, id uint, studentID string, summary SessionSummary, completedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.StudySession{}).
		Where("id = ? AND student_id = ?", id, studentID).
		UpdateColumns(map[string]interface{}{
			"questions_answered": summary.QuestionsAnswered,
			"correct_answers":    summary.CorrectAnswers,
			"points_earned":      summary.PointsEarned,
			"session_duration":   summary.DurationSeconds,
			"completed_at":       completedAt,
		})
	return res.RowsAffected > 0, res.Error
}
