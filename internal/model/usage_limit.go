package model

const FeatureHomeworkHelp = "homework_help"

// UsageLimit counts one student's use of one rate-limited feature.
// DailyUsage resets lazily when LastResetDate (YYYY-MM-DD) is not today.
// MonthlyUsage is only ever incremented.
type UsageLimit struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	StudentID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_usage_student_feature" json:"student_id"`
	FeatureType   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_usage_student_feature" json:"feature_type"`
	DailyUsage    int    `gorm:"not null;default:0" json:"daily_usage"`
	MonthlyUsage  int    `gorm:"not null;default:0" json:"monthly_usage"`
	LastResetDate string `gorm:"type:varchar(10);not null" json:"last_reset_date"`
	IsPremium     bool   `gorm:"not null;default:false" json:"is_premium"`
}
