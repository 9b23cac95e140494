package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows a random draw of questions. Zero values mean "any".
type QuestionFilter struct {
	TopicID    uint
	SubjectID  uint
	Difficulty int
	ExamType   string
	Limit      int
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	// FindRandom returns up to filter.Limit matching questions in random order.
	FindRandom(ctx context.Context, filter QuestionFilter) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindRandom(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	query := r.db.WithContext(ctx).Model(&model.Question{})
	if filter.TopicID != 0 {
		query = query.Where("topic_id = ?", filter.TopicID)
	}
	if filter.SubjectID != 0 {
		query = query.Where("topic_id IN (?)",
			r.db.Model(&model.Topic{}).Select("id").Where("subject_id = ?", filter.SubjectID))
	}
	if filter.Difficulty != 0 {
		query = query.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.ExamType != "" {
		query = query.Where("exam_type = ?", filter.ExamType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var questions []model.Question
	if err := query.Order("RANDOM()").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
