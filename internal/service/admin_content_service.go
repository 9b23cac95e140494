package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultQuestionPoints = 10
	defaultExamType       = "GENERAL"
)

// AdminContentService manages the practice catalog and account quotas.
type AdminContentService interface {
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	CreateTopic(ctx context.Context, subjectID uint, req dto.CreateTopicRequest) (*dto.TopicResponse, error)
	CreateQuestion(ctx context.Context, topicID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	SetPremium(ctx context.Context, studentID string, req dto.SetPremiumRequest) (*dto.UsageStatusResponse, error)
}

type adminContentService struct {
	subjectRepo  repository.SubjectRepository
	questionRepo repository.QuestionRepository
	studentRepo  repository.StudentRepository
	limiter      UsageLimiter
}

func NewAdminContentService(subjectRepo repository.SubjectRepository, questionRepo repository.QuestionRepository, studentRepo repository.StudentRepository, limiter UsageLimiter) AdminContentService {
	return &adminContentService{subjectRepo: subjectRepo, questionRepo: questionRepo, studentRepo: studentRepo, limiter: limiter}
}

func (s *adminContentService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := model.Subject{Name: req.Name, GradeLevel: req.GradeLevel, Description: req.Description}
	if err := s.subjectRepo.CreateSubject(ctx, &subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("admin.CreateSubject", "Subject already exists")
		}
		return nil, storeError("admin.CreateSubject", err)
	}
	log.Info().Uint("subjectID", subject.ID).Str("name", subject.Name).Msg("Admin: subject created")

	var resp dto.SubjectResponse
	if err := copier.Copy(&resp, &subject); err != nil {
		return nil, storeError("admin.CreateSubject", err)
	}
	return &resp, nil
}

func (s *adminContentService) CreateTopic(ctx context.Context, subjectID uint, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	if _, err := s.subjectRepo.FindSubjectByID(ctx, subjectID); err != nil {
		return nil, lookupError("admin.CreateTopic", "Subject not found", err)
	}
	difficulty := req.DifficultyLevel
	if difficulty == 0 {
		difficulty = 1
	}
	topic := model.Topic{SubjectID: subjectID, Name: req.Name, Description: req.Description, DifficultyLevel: difficulty}
	if err := s.subjectRepo.CreateTopic(ctx, &topic); err != nil {
		return nil, storeError("admin.CreateTopic", err)
	}
	log.Info().Uint("subjectID", subjectID).Uint("topicID", topic.ID).Msg("Admin: topic created")

	var resp dto.TopicResponse
	if err := copier.Copy(&resp, &topic); err != nil {
		return nil, storeError("admin.CreateTopic", err)
	}
	return &resp, nil
}

func (s *adminContentService) CreateQuestion(ctx context.Context, topicID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.subjectRepo.FindTopicByID(ctx, topicID); err != nil {
		return nil, lookupError("admin.CreateQuestion", "Topic not found", err)
	}
	if req.QuestionType == model.QuestionTypeMultipleChoice && len(req.Options) < 2 {
		return nil, apperror.Validation("admin.CreateQuestion", "multiple_choice questions need at least two options")
	}

	question := model.Question{
		TopicID:         topicID,
		QuestionText:    req.QuestionText,
		QuestionType:    req.QuestionType,
		CorrectAnswer:   req.CorrectAnswer,
		Explanation:     req.Explanation,
		DifficultyLevel: req.DifficultyLevel,
		Points:          req.Points,
		ExamType:        req.ExamType,
	}
	if question.DifficultyLevel == 0 {
		question.DifficultyLevel = 1
	}
	if question.Points == 0 {
		question.Points = defaultQuestionPoints
	}
	if question.ExamType == "" {
		question.ExamType = defaultExamType
	}
	if len(req.Options) > 0 {
		raw, err := json.Marshal(req.Options)
		if err != nil {
			return nil, storeError("admin.CreateQuestion", err)
		}
		question.Options = datatypes.JSON(raw)
	}

	if err := s.questionRepo.Create(ctx, &question); err != nil {
		return nil, storeError("admin.CreateQuestion", err)
	}
	log.Info().Uint("topicID", topicID).Uint("questionID", question.ID).Msg("Admin: question created")
	return toQuestionResponse(&question)
}

func (s *adminContentService) SetPremium(ctx context.Context, studentID string, req dto.SetPremiumRequest) (*dto.UsageStatusResponse, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, lookupError("admin.SetPremium", "Student not found", err)
	}
	if err := s.limiter.SetPremium(ctx, studentID, req.Feature, *req.IsPremium); err != nil {
		return nil, err
	}
	return &dto.UsageStatusResponse{Feature: req.Feature, IsPremium: *req.IsPremium}, nil
}
