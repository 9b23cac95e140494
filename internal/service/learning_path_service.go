package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultPathMinutes = 180

var defaultPathSteps = []dto.LearningPathStep{
	{Step: 1, Topic: "Basic Concepts", Difficulty: 1, EstimatedTime: 30},
	{Step: 2, Topic: "Intermediate Skills", Difficulty: 2, EstimatedTime: 45},
	{Step: 3, Topic: "Advanced Applications", Difficulty: 3, EstimatedTime: 60},
	{Step: 4, Topic: "Mastery Practice", Difficulty: 3, EstimatedTime: 45},
}

var defaultPathGoals = []string{
	"Master basic concepts",
	"Apply intermediate skills",
	"Solve complex problems",
	"Achieve subject mastery",
}

type LearningPathService interface {
	Path(ctx context.Context, studentID, subject string) (*dto.LearningPathResponse, error)
}

type learningPathService struct {
	pathRepo repository.LearningPathRepository
}

func NewLearningPathService(pathRepo repository.LearningPathRepository) LearningPathService {
	return &learningPathService{pathRepo: pathRepo}
}

// Path returns the active path for the subject, creating the default template on first use.
func (s *learningPathService) Path(ctx context.Context, studentID, subject string) (*dto.LearningPathResponse, error) {
	path, err := s.pathRepo.FindActive(ctx, studentID, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		path, err = s.generate(ctx, studentID, subject)
	}
	if err != nil {
		return nil, storeError("learningPath.Path", err)
	}

	var resp dto.LearningPathResponse
	if err := copier.Copy(&resp, path); err != nil {
		return nil, storeError("learningPath.Path", err)
	}
	resp.TargetGoals = decodeTopics(path.TargetGoals)
	resp.PathStructure = []dto.LearningPathStep{}
	if len(path.PathStructure) > 0 {
		if err := json.Unmarshal(path.PathStructure, &resp.PathStructure); err != nil {
			log.Warn().Err(err).Uint("pathID", path.ID).Msg("Failed to decode learning path structure")
		}
	}
	return &resp, nil
}

func (s *learningPathService) generate(ctx context.Context, studentID, subject string) (*model.LearningPath, error) {
	goals, err := json.Marshal(defaultPathGoals)
	if err != nil {
		return nil, err
	}
	steps, err := json.Marshal(defaultPathSteps)
	if err != nil {
		return nil, err
	}
	path := model.LearningPath{
		StudentID:               studentID,
		Subject:                 subject,
		PathName:                subject + " Learning Path",
		TargetGoals:             datatypes.JSON(goals),
		PathStructure:           datatypes.JSON(steps),
		EstimatedCompletionTime: defaultPathMinutes,
		IsActive:                true,
	}
	created, err := s.pathRepo.CreateActive(ctx, &path)
	if err != nil {
		return nil, err
	}
	if !created {
		// A concurrent request generated it first.
		return s.pathRepo.FindActive(ctx, studentID, subject)
	}
	log.Info().Str("studentID", studentID).Str("subject", subject).Uint("pathID", path.ID).Msg("Learning path generated")
	return &path, nil
}
