package service

import (
	"context"
	"encoding/json"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"gorm.io/datatypes"
)

type KnowledgeGraphService interface {
	Graph(ctx context.Context, studentID, subject string) ([]dto.KnowledgeNodeResponse, error)
}

type knowledgeGraphService struct {
	knowledgeRepo repository.KnowledgeRepository
}

func NewKnowledgeGraphService(knowledgeRepo repository.KnowledgeRepository) KnowledgeGraphService {
	return &knowledgeGraphService{knowledgeRepo: knowledgeRepo}
}

// Graph returns the subject's nodes with the student's mastery attached; untouched nodes report zeros.
func (s *knowledgeGraphService) Graph(ctx context.Context, studentID, subject string) ([]dto.KnowledgeNodeResponse, error) {
	nodes, err := s.knowledgeRepo.FindNodesBySubject(ctx, subject)
	if err != nil {
		return nil, storeError("knowledge.Graph", err)
	}
	mastery, err := s.knowledgeRepo.FindMastery(ctx, studentID, subject)
	if err != nil {
		return nil, storeError("knowledge.Graph", err)
	}
	byNode := make(map[uint]model.KnowledgeMastery, len(mastery))
	for _, m := range mastery {
		byNode[m.KnowledgeNodeID] = m
	}

	resp := make([]dto.KnowledgeNodeResponse, 0, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		var item dto.KnowledgeNodeResponse
		if err := copier.Copy(&item, node); err != nil {
			return nil, storeError("knowledge.Graph", err)
		}
		item.PrerequisiteTopics = decodeTopics(node.PrerequisiteTopics)
		item.RelatedTopics = decodeTopics(node.RelatedTopics)
		item.LearningObjectives = decodeTopics(node.LearningObjectives)
		if m, ok := byNode[node.ID]; ok {
			item.Mastery = dto.MasteryResponse{
				Level:         m.MasteryLevel,
				Confidence:    m.ConfidenceScore,
				LastPracticed: m.LastPracticed,
				PracticeCount: m.PracticeCount,
			}
		}
		resp = append(resp, item)
	}
	return resp, nil
}

// decodeTopics reads a JSON string list, treating empty or malformed columns as empty.
func decodeTopics(raw datatypes.JSON) []string {
	topics := []string{}
	if len(raw) == 0 {
		return topics
	}
	if err := json.Unmarshal(raw, &topics); err != nil || topics == nil {
		return []string{}
	}
	return topics
}
