package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/k12tutor/config"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{JWTSecret: "test-secret", JWTExpiration: time.Hour},
		Usage: config.Usage{
			DailyLimit:        3,
			PremiumDailyLimit: 999,
			HomeworkPoints:    5,
		},
	}
}

func createStudent(t *testing.T, db *gorm.DB, username string) *model.Student {
	t.Helper()
	student := &model.Student{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		GradeLevel:   "8th Grade",
	}
	require.NoError(t, repository.NewStudentRepository(db).Create(context.Background(), student))
	return student
}

func reloadStudent(t *testing.T, db *gorm.DB, id string) *model.Student {
	t.Helper()
	student, err := repository.NewStudentRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return student
}

func findQuestion(t *testing.T, db *gorm.DB, answer string) *model.Question {
	t.Helper()
	var q model.Question
	require.NoError(t, db.Where("correct_answer = ?", answer).First(&q).Error)
	return &q
}
