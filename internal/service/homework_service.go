package service

import (
	"context"
	"encoding/json"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/config"
	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultHomeworkQuestionType = "text"
	defaultHistoryLimit         = 10
)

// HomeworkService serves rate-limited homework help and its history.
type HomeworkService interface {
	Help(ctx context.Context, studentID string, req dto.HomeworkHelpRequest, image []byte) (*dto.HomeworkHelpResponse, error)
	History(ctx context.Context, studentID string, query dto.HistoryQuery) ([]dto.HomeworkHistoryItem, error)
	Rate(ctx context.Context, studentID string, sessionID uint, rating int) error
}

type homeworkService struct {
	db           *gorm.DB
	limiter      UsageLimiter
	homeworkRepo repository.HomeworkRepository
	studentRepo  repository.StudentRepository
	points       int
}

func NewHomeworkService(db *gorm.DB, limiter UsageLimiter, homeworkRepo repository.HomeworkRepository, studentRepo repository.StudentRepository, cfg *config.Config) HomeworkService {
	return &homeworkService{
		db:           db,
		limiter:      limiter,
		homeworkRepo: homeworkRepo,
		studentRepo:  studentRepo,
		points:       cfg.Usage.HomeworkPoints,
	}
}

// Help reserves a use of the feature, stores the session and awards points atomically.
// A refused reservation returns *apperror.QuotaExceededError and writes nothing.
func (s *homeworkService) Help(ctx context.Context, studentID string, req dto.HomeworkHelpRequest, image []byte) (*dto.HomeworkHelpResponse, error) {
	questionType := req.QuestionType
	if questionType == "" {
		questionType = defaultHomeworkQuestionType
	}

	tmpl := RespondHomework(req.Subject, req.QuestionText)
	steps, err := json.Marshal(tmpl.Steps)
	if err != nil {
		return nil, storeError("homework.Help", err)
	}
	concepts, err := json.Marshal(tmpl.RelatedConcepts)
	if err != nil {
		return nil, storeError("homework.Help", err)
	}

	var (
		session  model.HomeworkHelpSession
		decision *UsageDecision
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		decision, err = s.limiter.Reserve(ctx, tx, studentID, model.FeatureHomeworkHelp)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return &apperror.QuotaExceededError{
				Feature:   model.FeatureHomeworkHelp,
				Limit:     decision.Limit,
				Used:      decision.Used,
				ResetTime: decision.ResetTime,
			}
		}

		session = model.HomeworkHelpSession{
			StudentID:       studentID,
			QuestionText:    req.QuestionText,
			QuestionImage:   image,
			Subject:         req.Subject,
			QuestionType:    questionType,
			AIResponse:      tmpl.Response,
			StepsGuidance:   datatypes.JSON(steps),
			RelatedConcepts: datatypes.JSON(concepts),
		}
		if err := s.homeworkRepo.WithTx(tx).Create(ctx, &session); err != nil {
			return err
		}
		return s.studentRepo.WithTx(tx).AddPoints(ctx, studentID, s.points)
	})
	if err != nil {
		return nil, passThrough("homework.Help", err)
	}

	log.Info().Str("studentID", studentID).Uint("sessionID", session.ID).Str("subject", req.Subject).
		Int("used", decision.Used+1).Int("limit", decision.Limit).
		Msg("Homework help served")
	return &dto.HomeworkHelpResponse{
		SessionID:       session.ID,
		Response:        tmpl.Response,
		Steps:           tmpl.Steps,
		RelatedConcepts: tmpl.RelatedConcepts,
		PointsEarned:    s.points,
		UsageRemaining:  decision.Limit - decision.Used - 1,
	}, nil
}

func (s *homeworkService) History(ctx context.Context, studentID string, query dto.HistoryQuery) ([]dto.HomeworkHistoryItem, error) {
	limit := query.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	sessions, err := s.homeworkRepo.FindHistory(ctx, studentID, limit, query.Offset)
	if err != nil {
		return nil, storeError("homework.History", err)
	}

	items := make([]dto.HomeworkHistoryItem, 0, len(sessions))
	if err := copier.Copy(&items, &sessions); err != nil {
		return nil, storeError("homework.History", err)
	}
	return items, nil
}

func (s *homeworkService) Rate(ctx context.Context, studentID string, sessionID uint, rating int) error {
	if rating < 1 || rating > 5 {
		return apperror.Validation("homework.Rate", "Rating must be between 1 and 5")
	}
	found, err := s.homeworkRepo.Rate(ctx, sessionID, studentID, rating)
	if err != nil {
		return storeError("homework.Rate", err)
	}
	if !found {
		return apperror.NotFound("homework.Rate", "Session not found")
	}
	return nil
}
