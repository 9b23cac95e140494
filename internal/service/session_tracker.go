package service

import (
	"context"
	"time"

	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
)

// SessionTracker opens and closes practice runs. Per-question progress stays with the client
// until Close writes the totals.
type SessionTracker interface {
	Open(ctx context.Context, studentID string, req dto.StartSessionRequest) (uint, error)
	Close(ctx context.Context, studentID string, sessionID uint, req dto.CompleteSessionRequest) error
}

type sessionTracker struct {
	repo repository.StudySessionRepository
	now  func() time.Time
}

func NewSessionTracker(repo repository.StudySessionRepository) SessionTracker {
	return &sessionTracker{repo: repo, now: time.Now}
}

func (s *sessionTracker) Open(ctx context.Context, studentID string, req dto.StartSessionRequest) (uint, error) {
	session := model.StudySession{
		StudentID:   studentID,
		SessionType: req.SessionType,
		SubjectID:   req.SubjectID,
		TopicID:     req.TopicID,
	}
	if err := s.repo.Create(ctx, &session); err != nil {
		return 0, storeError("session.Open", err)
	}
	log.Info().Str("studentID", studentID).Uint("sessionID", session.ID).Str("type", req.SessionType).Msg("Study session opened")
	return session.ID, nil
}

// Close stores the totals exactly as given. Closing an already closed session overwrites it.
func (s *sessionTracker) Close(ctx context.Context, studentID string, sessionID uint, req dto.CompleteSessionRequest) error {
	summary := repository.SessionSummary{
		QuestionsAnswered: req.QuestionsAnswered,
		CorrectAnswers:    req.CorrectAnswers,
		PointsEarned:      req.PointsEarned,
		DurationSeconds:   req.SessionDuration,
	}
	found, err := s.repo.Complete(ctx, sessionID, studentID, summary, s.now())
	if err != nil {
		return storeError("session.Close", err)
	}
	if !found {
		return apperror.NotFound("session.Close", "Session not found")
	}
	log.Info().Str("studentID", studentID).Uint("sessionID", sessionID).
		Int("answered", req.QuestionsAnswered).Int("correct", req.CorrectAnswers).
		Msg("Study session closed")
	return nil
}
