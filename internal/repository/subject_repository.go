package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	CreateSubject(ctx context.Context, subject *model.Subject) error
	CreateTopic(ctx context.Context, topic *model.Topic) error
	FindAllSubjects(ctx context.Context) ([]model.Subject, error)
	FindSubjectByID(ctx context.Context, id uint) (*model.Subject, error)
	FindTopicsBySubjectID(ctx context.Context, subjectID uint) ([]model.Topic, error)
	FindTopicByID(ctx context.Context, id uint) (*model.Topic, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) CreateSubject(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) CreateTopic(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *subjectRepository) FindAllSubjects(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) FindSubjectByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindTopicsBySubjectID(ctx context.Context, subjectID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("difficulty_level ASC").Order("name ASC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *subjectRepository) FindTopicByID(ctx context.Context, id uint) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}
