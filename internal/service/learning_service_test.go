package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/k12tutor/database/dbtest"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestKnowledgeGraphService_AttachesMastery(t *testing.T) {
	db := dbtest.OpenSeeded(t)
	ctx := context.Background()
	student := createStudent(t, db, "mapper")
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	svc := NewKnowledgeGraphService(knowledgeRepo)

	nodes, err := knowledgeRepo.FindNodesByTopic(ctx, "Mathematics", "Linear Equations")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	practiced := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, knowledgeRepo.UpsertMastery(ctx, &model.KnowledgeMastery{
		StudentID:       student.ID,
		KnowledgeNodeID: nodes[0].ID,
		MasteryLevel:    0.7,
		ConfidenceScore: 0.6,
		LastPracticed:   &practiced,
		PracticeCount:   4,
	}))

	graph, err := svc.Graph(ctx, student.ID, "Mathematics")
	require.NoError(t, err)
	require.Len(t, graph, 4)
	for i := 1; i < len(graph); i++ {
		assert.LessOrEqual(t, graph[i-1].DifficultyLevel, graph[i].DifficultyLevel)
	}

	for _, node := range graph {
		switch node.Topic {
		case "Linear Equations":
			assert.Equal(t, 0.7, node.Mastery.Level)
			assert.Equal(t, 0.6, node.Mastery.Confidence)
			assert.Equal(t, 4, node.Mastery.PracticeCount)
			require.NotNil(t, node.Mastery.LastPracticed)
			assert.Equal(t, []string{"Algebra Basics"}, node.PrerequisiteTopics)
		case "Basic Arithmetic":
			assert.Zero(t, node.Mastery.Level)
			assert.Nil(t, node.Mastery.LastPracticed)
			assert.Equal(t, []string{}, node.PrerequisiteTopics)
		default:
			assert.Zero(t, node.Mastery.PracticeCount, node.Topic)
		}
	}

	other, err := svc.Graph(ctx, createStudent(t, db, "newcomer").ID, "Mathematics")
	require.NoError(t, err)
	for _, node := range other {
		assert.Zero(t, node.Mastery.Level)
	}

	empty, err := svc.Graph(ctx, student.ID, "Astrology")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeTopics(t *testing.T) {
	assert.Equal(t, []string{}, decodeTopics(nil))
	assert.Equal(t, []string{}, decodeTopics(datatypes.JSON("null")))
	assert.Equal(t, []string{}, decodeTopics(datatypes.JSON("{not json")))
	assert.Equal(t, []string{"a", "b"}, decodeTopics(datatypes.JSON(`["a","b"]`)))
}

func TestLearningPathService_GeneratesOnceThenReuses(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "pathfinder")
	svc := NewLearningPathService(repository.NewLearningPathRepository(db))

	first, err := svc.Path(ctx, student.ID, "Science")
	require.NoError(t, err)
	assert.Equal(t, "Science Learning Path", first.PathName)
	assert.Equal(t, 180, first.EstimatedCompletionTime)
	assert.True(t, first.IsActive)
	assert.Len(t, first.PathStructure, 4)
	assert.Len(t, first.TargetGoals, 4)
	assert.Equal(t, "Basic Concepts", first.PathStructure[0].Topic)

	second, err := svc.Path(ctx, student.ID, "Science")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.LearningPath{}).Where("student_id = ?", student.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	math, err := svc.Path(ctx, student.ID, "Mathematics")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, math.ID)
}

func TestLearningPathService_GenerateLosesRace(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "racer")
	repo := repository.NewLearningPathRepository(db)
	svc := &learningPathService{pathRepo: repo}

	winner := &model.LearningPath{StudentID: student.ID, Subject: "Science", PathName: "winner"}
	created, err := repo.CreateActive(ctx, winner)
	require.NoError(t, err)
	require.True(t, created)

	path, err := svc.generate(ctx, student.ID, "Science")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, path.ID)
	assert.Equal(t, "winner", path.PathName)

	var count int64
	require.NoError(t, db.Model(&model.LearningPath{}).Where("student_id = ?", student.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGoalService(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "ambitious")
	svc := NewGoalService(repository.NewLearningGoalRepository(db))

	goals, err := svc.ListGoals(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)

	target := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	firstID, err := svc.CreateGoal(ctx, student.ID, dto.CreateGoalRequest{GoalType: "exam_score", TargetValue: "1400", TargetDate: &target})
	require.NoError(t, err)
	secondID, err := svc.CreateGoal(ctx, student.ID, dto.CreateGoalRequest{GoalType: "weekly_practice", TargetValue: "5"})
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	goals, err = svc.ListGoals(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, secondID, goals[0].ID, "newest first")
	assert.Equal(t, "0", goals[1].CurrentValue)
	assert.False(t, goals[1].IsCompleted)
}
