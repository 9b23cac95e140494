package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Evaluation is the grading outcome of one submitted answer.
type Evaluation struct {
	IsCorrect    bool
	PointsEarned int
}

// Evaluate compares answers case-insensitively after trimming surrounding whitespace.
// There is no partial credit.
func Evaluate(question *model.Question, submitted string) Evaluation {
	correct := strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(question.CorrectAnswer))
	if !correct {
		return Evaluation{}
	}
	return Evaluation{IsCorrect: true, PointsEarned: question.Points}
}

type AnswerService interface {
	SubmitAnswer(ctx context.Context, studentID string, questionID uint, req dto.SubmitAnswerRequest) (*dto.AnswerResultResponse, error)
}

type answerService struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	studentRepo  repository.StudentRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAnswerService(db *gorm.DB, questionRepo repository.QuestionRepository, attemptRepo repository.AttemptRepository, studentRepo repository.StudentRepository) AnswerService {
	seed := uint64(time.Now().UnixNano())
	return newAnswerService(db, questionRepo, attemptRepo, studentRepo, rand.New(rand.NewPCG(seed, seed>>1)))
}

func newAnswerService(db *gorm.DB, questionRepo repository.QuestionRepository, attemptRepo repository.AttemptRepository, studentRepo repository.StudentRepository, rng *rand.Rand) *answerService {
	return &answerService{
		db:           db,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		studentRepo:  studentRepo,
		rng:          rng,
	}
}

// SubmitAnswer grades the answer, records the attempt and awards points in one transaction.
func (s *answerService) SubmitAnswer(ctx context.Context, studentID string, questionID uint, req dto.SubmitAnswerRequest) (*dto.AnswerResultResponse, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, lookupError("answer.Submit", "Question not found", err)
	}

	eval := Evaluate(question, req.StudentAnswer)
	attempt := model.Attempt{
		StudentID:     studentID,
		QuestionID:    question.ID,
		StudentAnswer: req.StudentAnswer,
		IsCorrect:     eval.IsCorrect,
		TimeSpent:     req.TimeSpent,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.WithTx(tx).Create(ctx, &attempt); err != nil {
			return err
		}
		if eval.PointsEarned > 0 {
			return s.studentRepo.WithTx(tx).AddPoints(ctx, studentID, eval.PointsEarned)
		}
		return nil
	})
	if err != nil {
		return nil, storeError("answer.Submit", err)
	}

	log.Debug().Str("studentID", studentID).Uint("questionID", questionID).
		Bool("correct", eval.IsCorrect).Int("points", eval.PointsEarned).
		Msg("Answer recorded")

	s.mu.Lock()
	feedback := SelectFeedback(eval.IsCorrect, s.rng)
	s.mu.Unlock()

	return &dto.AnswerResultResponse{
		IsCorrect:     eval.IsCorrect,
		PointsEarned:  eval.PointsEarned,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Feedback:      feedback,
	}, nil
}
