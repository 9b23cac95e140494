package service

import (
	"context"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultTopicQuestionLimit = 10
	defaultExamQuestionLimit  = 20
)

// CatalogService lists subjects, topics and practice questions.
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	ListTopics(ctx context.Context, subjectID uint) ([]dto.TopicResponse, error)
	TopicQuestions(ctx context.Context, topicID uint, query dto.QuestionQuery) ([]dto.QuestionResponse, error)
	ExamQuestions(ctx context.Context, examType string, query dto.ExamQuery) ([]dto.QuestionResponse, error)
}

type catalogService struct {
	subjectRepo  repository.SubjectRepository
	questionRepo repository.QuestionRepository
}

func NewCatalogService(subjectRepo repository.SubjectRepository, questionRepo repository.QuestionRepository) CatalogService {
	return &catalogService{subjectRepo: subjectRepo, questionRepo: questionRepo}
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAllSubjects(ctx)
	if err != nil {
		return nil, storeError("catalog.ListSubjects", err)
	}
	resp := make([]dto.SubjectResponse, 0, len(subjects))
	if err := copier.Copy(&resp, &subjects); err != nil {
		return nil, storeError("catalog.ListSubjects", err)
	}
	return resp, nil
}

// ListTopics returns an empty list for unknown subjects.
func (s *catalogService) ListTopics(ctx context.Context, subjectID uint) ([]dto.TopicResponse, error) {
	topics, err := s.subjectRepo.FindTopicsBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, storeError("catalog.ListTopics", err)
	}
	resp := make([]dto.TopicResponse, 0, len(topics))
	if err := copier.Copy(&resp, &topics); err != nil {
		return nil, storeError("catalog.ListTopics", err)
	}
	return resp, nil
}

func (s *catalogService) TopicQuestions(ctx context.Context, topicID uint, query dto.QuestionQuery) ([]dto.QuestionResponse, error) {
	limit := query.Limit
	if limit == 0 {
		limit = defaultTopicQuestionLimit
	}
	questions, err := s.questionRepo.FindRandom(ctx, repository.QuestionFilter{
		TopicID:    topicID,
		Difficulty: query.Difficulty,
		ExamType:   query.ExamType,
		Limit:      limit,
	})
	if err != nil {
		return nil, storeError("catalog.TopicQuestions", err)
	}
	return toQuestionResponses(questions)
}

// ExamQuestions draws questions of one exam type; the type is matched upper-cased.
func (s *catalogService) ExamQuestions(ctx context.Context, examType string, query dto.ExamQuery) ([]dto.QuestionResponse, error) {
	limit := query.Limit
	if limit == 0 {
		limit = defaultExamQuestionLimit
	}
	questions, err := s.questionRepo.FindRandom(ctx, repository.QuestionFilter{
		SubjectID: query.SubjectID,
		ExamType:  strings.ToUpper(examType),
		Limit:     limit,
	})
	if err != nil {
		return nil, storeError("catalog.ExamQuestions", err)
	}
	return toQuestionResponses(questions)
}

func toQuestionResponses(questions []model.Question) ([]dto.QuestionResponse, error) {
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		q, err := toQuestionResponse(&questions[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *q)
	}
	return resp, nil
}

func toQuestionResponse(question *model.Question) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, storeError("catalog.toQuestionResponse", err)
	}
	options, err := question.OptionList()
	if err != nil {
		// A malformed option list should not hide the question.
		log.Warn().Err(err).Uint("questionID", question.ID).Msg("Failed to decode question options")
	}
	resp.Options = options
	return &resp, nil
}
