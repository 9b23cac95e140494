package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/k12tutor/database/dbtest"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestUsageLimiter_AdmitCountsThreeThenRefuses(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "limited")
	clock := &fakeClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 3, 999, clock.Now)

	for i := 0; i < 3; i++ {
		decision, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "call %d", i+1)
		assert.Equal(t, i, decision.Used)
		assert.Equal(t, 3, decision.Limit)
		assert.Equal(t, "midnight", decision.ResetTime)
	}

	decision, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 3, decision.Used)
	assert.Equal(t, 3, decision.Limit)

	record, err := repository.NewUsageLimitRepository(db).Find(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.Equal(t, 3, record.DailyUsage, "refused calls are not counted")
	assert.Equal(t, 3, record.MonthlyUsage)
}

func TestUsageLimiter_ResetsOnNewDay(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "nextday")
	clock := &fakeClock{now: time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)}
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 3, 999, clock.Now)

	for i := 0; i < 4; i++ {
		_, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
		require.NoError(t, err)
	}

	clock.now = clock.now.Add(time.Hour)
	decision, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0, decision.Used)

	record, err := repository.NewUsageLimitRepository(db).Find(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", record.LastResetDate)
	assert.Equal(t, 1, record.DailyUsage)
	assert.Equal(t, 4, record.MonthlyUsage, "monthly usage is never reset")
}

func TestUsageLimiter_PremiumLimit(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "premium")
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 3, 999, time.Now)

	require.NoError(t, limiter.SetPremium(ctx, student.ID, model.FeatureHomeworkHelp, true))
	for i := 0; i < 5; i++ {
		decision, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 999, decision.Limit)
	}
}

func TestUsageLimiter_RecordUsageSkipsTheCheck(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "recorder")
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 1, 999, time.Now)

	decision, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	require.NoError(t, limiter.RecordUsage(ctx, student.ID, model.FeatureHomeworkHelp))
	record, err := repository.NewUsageLimitRepository(db).Find(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.Equal(t, 2, record.DailyUsage)
	assert.Equal(t, 2, record.MonthlyUsage)
}

func TestUsageLimiter_CheckThenRecordCycles(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "twostep")
	clock := &fakeClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 3, 999, clock.Now)

	for i := 0; i < 3; i++ {
		decision, err := limiter.CheckAndReserve(ctx, student.ID, model.FeatureHomeworkHelp)
		require.NoError(t, err)
		require.True(t, decision.Allowed, "cycle %d", i+1)
		assert.Equal(t, i, decision.Used)
		assert.Equal(t, 3, decision.Limit)
		require.NoError(t, limiter.RecordUsage(ctx, student.ID, model.FeatureHomeworkHelp))
	}

	decision, err := limiter.CheckAndReserve(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 3, decision.Used)
	assert.Equal(t, 3, decision.Limit)
	assert.Equal(t, "midnight", decision.ResetTime)

	clock.now = clock.now.Add(24 * time.Hour)
	decision, err = limiter.CheckAndReserve(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0, decision.Used)
}

func TestUsageLimiter_CheckDoesNotCount(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "checker")
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 3, 999, time.Now)

	for i := 0; i < 5; i++ {
		decision, err := limiter.CheckAndReserve(ctx, student.ID, model.FeatureHomeworkHelp)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 0, decision.Used)
	}

	record, err := repository.NewUsageLimitRepository(db).Find(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	assert.Equal(t, 0, record.DailyUsage)
	assert.Equal(t, 0, record.MonthlyUsage)
}

func TestUsageLimiter_FeaturesAreIndependent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	student := createStudent(t, db, "multi")
	limiter := newUsageLimiter(repository.NewUsageLimitRepository(db), db, 1, 999, time.Now)

	first, err := limiter.Admit(ctx, student.ID, model.FeatureHomeworkHelp)
	require.NoError(t, err)
	other, err := limiter.Admit(ctx, student.ID, "essay_review")
	require.NoError(t, err)

	assert.True(t, first.Allowed)
	assert.True(t, other.Allowed)
}
