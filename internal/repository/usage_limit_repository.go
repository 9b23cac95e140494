package repository

import (
	"context"

	"github.com/lshigami/k12tutor/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageLimitRepository interface {
	WithTx(tx *gorm.DB) UsageLimitRepository
	// EnsureExists inserts a zeroed row dated today unless one is already there.
	EnsureExists(ctx context.Context, studentID, feature, today string) error
	// ResetIfStale zeroes the daily counter when the stored date is not today.
	ResetIfStale(ctx context.Context, studentID, feature, today string) error
	// IncrementIfBelow bumps both counters only while daily usage is under the account's limit.
	IncrementIfBelow(ctx context.Context, studentID, feature string, limit, premiumLimit int) (bool, error)
	// Increment bumps both counters unconditionally.
	Increment(ctx context.Context, studentID, feature string) error
	Find(ctx context.Context, studentID, feature string) (*model.UsageLimit, error)
	SetPremium(ctx context.Context, studentID, feature string, premium bool) error
}

type usageLimitRepository struct {
	db *gorm.DB
}

func NewUsageLimitRepository(db *gorm.DB) UsageLimitRepository {
	return &usageLimitRepository{db: db}
}

func (r *usageLimitRepository) WithTx(tx *gorm.DB) UsageLimitRepository {
	return &usageLimitRepository{db: tx}
}

func (r *usageLimitRepository) scope(ctx context.Context, studentID, feature string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.UsageLimit{}).
		Where("student_id = ? AND feature_type = ?", studentID, feature)
}

func (r *usageLimitRepository) EnsureExists(ctx context.Context, studentID, feature, today string) error {
	row := model.UsageLimit{StudentID: studentID, FeatureType: feature, LastResetDate: today}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "feature_type"}},
		DoNothing: true,
	}).Create(&row).Error
}

func (r *usageLimitRepository) ResetIfStale(ctx context.Context, studentID, feature, today string) error {
	return r.scope(ctx, studentID, feature).
		Where("last_reset_date <> ?", today).
		UpdateColumns(map[string]interface{}{
			"daily_usage":     0,
			"last_reset_date": today,
		}).Error
}

func (r *usageLimitRepository) IncrementIfBelow(ctx context.Context, studentID, feature string, limit, premiumLimit int) (bool, error) {
	res := r.scope(ctx, studentID, feature).
		Where("daily_usage < CASE WHEN is_premium THEN ? ELSE ? END", premiumLimit, limit).
		UpdateColumns(map[string]interface{}{
			"daily_usage":   gorm.Expr("daily_usage + 1"),
			"monthly_usage": gorm.Expr("monthly_usage + 1"),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *usageLimitRepository) Increment(ctx context.Context, studentID, feature string) error {
	return r.scope(ctx, studentID, feature).
		UpdateColumns(map[string]interface{}{
			"daily_usage":   gorm.Expr("daily_usage + 1"),
			"monthly_usage": gorm.Expr("monthly_usage + 1"),
		}).Error
}

func (r *usageLimitRepository) Find(ctx context.Context, studentID, feature string) (*model.UsageLimit, error) {
	var usage model.UsageLimit
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND feature_type = ?", studentID, feature).
		First(&usage).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

func (r *usageLimitRepository) SetPremium(ctx context.Context, studentID, feature string, premium bool) error {
	return r.scope(ctx, studentID, feature).UpdateColumn("is_premium", premium).Error
}
