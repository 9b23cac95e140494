package service

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultDiagnosticType = "adaptive"
	minutesPerQuestion    = 2

	weakMasteryLevel      = 0.3
	weakMasteryConfidence = 0.5
)

// DiagnosticResult is the plain proportion score of a diagnostic run.
type DiagnosticResult struct {
	AbilityEstimate float64
	Strengths       []string
	Weaknesses      []string
}

// ScoreDiagnostic returns correct/total (0 for no responses) and the topics answered
// correctly and incorrectly, each deduplicated in first-seen order.
func ScoreDiagnostic(responses []dto.DiagnosticAnswer) DiagnosticResult {
	result := DiagnosticResult{Strengths: []string{}, Weaknesses: []string{}}
	if len(responses) == 0 {
		return result
	}

	seenStrong := make(map[string]bool)
	seenWeak := make(map[string]bool)
	correct := 0
	for _, r := range responses {
		if r.IsCorrect {
			correct++
			if !seenStrong[r.Topic] {
				seenStrong[r.Topic] = true
				result.Strengths = append(result.Strengths, r.Topic)
			}
			continue
		}
		if !seenWeak[r.Topic] {
			seenWeak[r.Topic] = true
			result.Weaknesses = append(result.Weaknesses, r.Topic)
		}
	}
	result.AbilityEstimate = float64(correct) / float64(len(responses))
	return result
}

var diagnosticBank = map[string][]dto.DiagnosticQuestion{
	"Mathematics": {
		{ID: 1, Question: "What is the value of x in the equation 2x + 5 = 13?", Type: model.QuestionTypeMultipleChoice,
			Options: []string{"x = 3", "x = 4", "x = 5", "x = 6"}, CorrectAnswer: "x = 4", Difficulty: 1, Topic: "Algebra Basics"},
		{ID: 2, Question: "If y = 3x - 2, what is the value of y when x = 5?", Type: model.QuestionTypeMultipleChoice,
			Options: []string{"y = 11", "y = 13", "y = 15", "y = 17"}, CorrectAnswer: "y = 13", Difficulty: 1, Topic: "Linear Equations"},
		{ID: 3, Question: "What is the slope of the line passing through points (2, 3) and (4, 7)?", Type: model.QuestionTypeMultipleChoice,
			Options: []string{"slope = 1", "slope = 2", "slope = 3", "slope = 4"}, CorrectAnswer: "slope = 2", Difficulty: 2, Topic: "Linear Equations"},
	},
	"Science": {
		{ID: 4, Question: "What is the chemical symbol for water?", Type: model.QuestionTypeMultipleChoice,
			Options: []string{"H2O", "CO2", "NaCl", "O2"}, CorrectAnswer: "H2O", Difficulty: 1, Topic: "Basic Chemistry"},
		{ID: 5, Question: "What is the process by which plants make their own food?", Type: model.QuestionTypeMultipleChoice,
			Options: []string{"Respiration", "Photosynthesis", "Digestion", "Fermentation"}, CorrectAnswer: "Photosynthesis", Difficulty: 2, Topic: "Biology"},
	},
}

// DiagnosticQuestions returns a copy of the fixed question set for subject, empty when unknown.
func DiagnosticQuestions(subject string) []dto.DiagnosticQuestion {
	bank := diagnosticBank[subject]
	questions := make([]dto.DiagnosticQuestion, len(bank))
	for i, q := range bank {
		q.Options = slices.Clone(q.Options)
		questions[i] = q
	}
	return questions
}

type DiagnosticService interface {
	Start(ctx context.Context, studentID string, req dto.StartDiagnosticRequest) (*dto.StartDiagnosticResponse, error)
	Submit(ctx context.Context, studentID string, testID uint, req dto.SubmitDiagnosticRequest) (*dto.DiagnosticResultResponse, error)
}

type diagnosticService struct {
	db            *gorm.DB
	diagRepo      repository.DiagnosticRepository
	knowledgeRepo repository.KnowledgeRepository
	now           func() time.Time
}

func NewDiagnosticService(db *gorm.DB, diagRepo repository.DiagnosticRepository, knowledgeRepo repository.KnowledgeRepository) DiagnosticService {
	return &diagnosticService{db: db, diagRepo: diagRepo, knowledgeRepo: knowledgeRepo, now: time.Now}
}

func (s *diagnosticService) Start(ctx context.Context, studentID string, req dto.StartDiagnosticRequest) (*dto.StartDiagnosticResponse, error) {
	testType := req.TestType
	if testType == "" {
		testType = defaultDiagnosticType
	}
	questions := DiagnosticQuestions(req.Subject)

	test := model.DiagnosticTest{
		StudentID:         studentID,
		Subject:           req.Subject,
		TestType:          testType,
		QuestionsAnswered: datatypes.JSON("[]"),
		Responses:         datatypes.JSON("[]"),
	}
	if err := s.diagRepo.Create(ctx, &test); err != nil {
		return nil, storeError("diagnostic.Start", err)
	}

	log.Info().Str("studentID", studentID).Uint("testID", test.ID).Str("subject", req.Subject).
		Int("questions", len(questions)).Msg("Diagnostic test started")
	return &dto.StartDiagnosticResponse{
		TestID:        test.ID,
		Questions:     questions,
		EstimatedTime: len(questions) * minutesPerQuestion,
	}, nil
}

// Submit scores the responses, completes the test row and flags every weak topic as needing practice.
func (s *diagnosticService) Submit(ctx context.Context, studentID string, testID uint, req dto.SubmitDiagnosticRequest) (*dto.DiagnosticResultResponse, error) {
	result := ScoreDiagnostic(req.Responses)

	responses, err := json.Marshal(req.Responses)
	if err != nil {
		return nil, storeError("diagnostic.Submit", err)
	}
	recommended, err := json.Marshal(result.Weaknesses)
	if err != nil {
		return nil, storeError("diagnostic.Submit", err)
	}

	now := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		diagRepo := s.diagRepo.WithTx(tx)
		knowledgeRepo := s.knowledgeRepo.WithTx(tx)

		test, err := diagRepo.FindForStudent(ctx, testID, studentID)
		if err != nil {
			return lookupError("diagnostic.Submit", "Diagnostic test not found", err)
		}

		ability := result.AbilityEstimate
		test.Responses = datatypes.JSON(responses)
		test.AbilityEstimate = &ability
		test.RecommendedTopics = datatypes.JSON(recommended)
		test.TestDuration = req.TestDuration
		test.CompletedAt = &now
		if err := diagRepo.Update(ctx, test); err != nil {
			return err
		}

		for _, topic := range result.Weaknesses {
			nodes, err := knowledgeRepo.FindNodesByTopic(ctx, test.Subject, topic)
			if err != nil {
				return err
			}
			for _, node := range nodes {
				practiced := now
				mastery := model.KnowledgeMastery{
					StudentID:       studentID,
					KnowledgeNodeID: node.ID,
					MasteryLevel:    weakMasteryLevel,
					ConfidenceScore: weakMasteryConfidence,
					LastPracticed:   &practiced,
					PracticeCount:   1,
				}
				if err := knowledgeRepo.UpsertMastery(ctx, &mastery); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("diagnostic.Submit", err)
	}

	log.Info().Str("studentID", studentID).Uint("testID", testID).
		Float64("ability", result.AbilityEstimate).Strs("weaknesses", result.Weaknesses).
		Msg("Diagnostic test submitted")
	return &dto.DiagnosticResultResponse{
		AbilityEstimate: result.AbilityEstimate,
		Recommendations: result.Weaknesses,
		Strengths:       result.Strengths,
		Weaknesses:      result.Weaknesses,
	}, nil
}
