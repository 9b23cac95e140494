package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/lshigami/k12tutor/database/dbtest"
	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEvaluate(t *testing.T) {
	question := &model.Question{CorrectAnswer: "x = 4", Points: 10}

	tests := []struct {
		name      string
		submitted string
		correct   bool
		points    int
	}{
		{"exact", "x = 4", true, 10},
		{"upper case", "X = 4", true, 10},
		{"surrounding whitespace", "  x = 4 \n", true, 10},
		{"wrong value", "x = 5", false, 0},
		{"inner spacing differs", "x=4", false, 0},
		{"empty", "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(question, tt.submitted)
			assert.Equal(t, tt.correct, eval.IsCorrect)
			assert.Equal(t, tt.points, eval.PointsEarned)
		})
	}
}

func newTestAnswerService(db *gorm.DB) *answerService {
	return newAnswerService(db,
		repository.NewQuestionRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewStudentRepository(db),
		rand.New(rand.NewPCG(3, 4)))
}

func TestSubmitAnswer_CorrectAwardsPoints(t *testing.T) {
	db := dbtest.OpenSeeded(t)
	ctx := context.Background()
	student := createStudent(t, db, "solver")
	question := findQuestion(t, db, "x = 4")
	svc := newTestAnswerService(db)

	resp, err := svc.SubmitAnswer(ctx, student.ID, question.ID, dto.SubmitAnswerRequest{StudentAnswer: " X = 4 ", TimeSpent: 30})
	require.NoError(t, err)

	assert.True(t, resp.IsCorrect)
	assert.Equal(t, 10, resp.PointsEarned)
	assert.Equal(t, "x = 4", resp.CorrectAnswer)
	assert.NotEmpty(t, resp.Explanation)
	assert.Equal(t, FeedbackSuccess, resp.Feedback.Type)
	assert.Equal(t, 10, reloadStudent(t, db, student.ID).TotalPoints)

	attempts, err := repository.NewAttemptRepository(db).FindByStudent(ctx, student.ID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].IsCorrect)
	assert.Equal(t, " X = 4 ", attempts[0].StudentAnswer)
	assert.Equal(t, 30, attempts[0].TimeSpent)
}

func TestSubmitAnswer_WrongRecordsZeroPointAttempt(t *testing.T) {
	db := dbtest.OpenSeeded(t)
	ctx := context.Background()
	student := createStudent(t, db, "guesser")
	question := findQuestion(t, db, "slope = 2")
	svc := newTestAnswerService(db)

	resp, err := svc.SubmitAnswer(ctx, student.ID, question.ID, dto.SubmitAnswerRequest{StudentAnswer: "slope = 3"})
	require.NoError(t, err)

	assert.False(t, resp.IsCorrect)
	assert.Equal(t, 0, resp.PointsEarned)
	assert.Equal(t, "slope = 2", resp.CorrectAnswer)
	assert.Equal(t, FeedbackHelpful, resp.Feedback.Type)
	assert.Equal(t, 0, reloadStudent(t, db, student.ID).TotalPoints)

	attempts, err := repository.NewAttemptRepository(db).FindByStudent(ctx, student.ID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].IsCorrect)
}

func TestSubmitAnswer_PointsAccumulate(t *testing.T) {
	db := dbtest.OpenSeeded(t)
	ctx := context.Background()
	student := createStudent(t, db, "steady")
	svc := newTestAnswerService(db)

	_, err := svc.SubmitAnswer(ctx, student.ID, findQuestion(t, db, "x = 4").ID, dto.SubmitAnswerRequest{StudentAnswer: "x = 4"})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, student.ID, findQuestion(t, db, "slope = 2").ID, dto.SubmitAnswerRequest{StudentAnswer: "slope = 2"})
	require.NoError(t, err)

	assert.Equal(t, 25, reloadStudent(t, db, student.ID).TotalPoints)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	db := dbtest.Open(t)
	student := createStudent(t, db, "lost")
	svc := newTestAnswerService(db)

	_, err := svc.SubmitAnswer(context.Background(), student.ID, 9999, dto.SubmitAnswerRequest{StudentAnswer: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, "Question not found", apperror.Message(err))
}
