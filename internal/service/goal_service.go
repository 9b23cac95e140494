package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
)

type GoalService interface {
	ListGoals(ctx context.Context, studentID string) ([]dto.LearningGoalResponse, error)
	CreateGoal(ctx context.Context, studentID string, req dto.CreateGoalRequest) (uint, error)
}

type goalService struct {
	goalRepo repository.LearningGoalRepository
}

func NewGoalService(goalRepo repository.LearningGoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) ListGoals(ctx context.Context, studentID string) ([]dto.LearningGoalResponse, error) {
	goals, err := s.goalRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, storeError("goal.List", err)
	}
	resp := make([]dto.LearningGoalResponse, 0, len(goals))
	if err := copier.Copy(&resp, &goals); err != nil {
		return nil, storeError("goal.List", err)
	}
	return resp, nil
}

func (s *goalService) CreateGoal(ctx context.Context, studentID string, req dto.CreateGoalRequest) (uint, error) {
	goal := model.LearningGoal{
		StudentID:   studentID,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		TargetDate:  req.TargetDate,
	}
	if err := s.goalRepo.Create(ctx, &goal); err != nil {
		return 0, storeError("goal.Create", err)
	}
	return goal.ID, nil
}
