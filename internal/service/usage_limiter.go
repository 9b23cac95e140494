package service

import (
	"context"
	"time"

	"github.com/lshigami/k12tutor/config"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	usageDateLayout = "2006-01-02"
	usageResetTime  = "midnight"
)

// UsageDecision is the outcome of one admission check. Used is the daily count before the
// call was admitted.
type UsageDecision struct {
	Allowed   bool
	Limit     int
	Used      int
	ResetTime string
}

// UsageLimiter admits calls to rate-limited features. CheckAndReserve and RecordUsage are the
// two-step form: decide, run the feature, then count it. Admit and Reserve decide and count in
// one conditional update.
type UsageLimiter interface {
	// CheckAndReserve reports whether the call would be admitted without counting it.
	CheckAndReserve(ctx context.Context, studentID, feature string) (*UsageDecision, error)
	// RecordUsage counts a call without checking the limit.
	RecordUsage(ctx context.Context, studentID, feature string) error
	// Admit decides and counts the call in one atomic step.
	Admit(ctx context.Context, studentID, feature string) (*UsageDecision, error)
	// Reserve is Admit inside the caller's transaction.
	Reserve(ctx context.Context, tx *gorm.DB, studentID, feature string) (*UsageDecision, error)
	SetPremium(ctx context.Context, studentID, feature string, premium bool) error
}

type usageLimiter struct {
	repo         repository.UsageLimitRepository
	db           *gorm.DB
	dailyLimit   int
	premiumLimit int
	now          func() time.Time
}

func NewUsageLimiter(repo repository.UsageLimitRepository, db *gorm.DB, cfg *config.Config) UsageLimiter {
	return newUsageLimiter(repo, db, cfg.Usage.DailyLimit, cfg.Usage.PremiumDailyLimit, time.Now)
}

func newUsageLimiter(repo repository.UsageLimitRepository, db *gorm.DB, dailyLimit, premiumLimit int, now func() time.Time) *usageLimiter {
	return &usageLimiter{repo: repo, db: db, dailyLimit: dailyLimit, premiumLimit: premiumLimit, now: now}
}

func (s *usageLimiter) today() string {
	return s.now().UTC().Format(usageDateLayout)
}

func (s *usageLimiter) limitFor(premium bool) int {
	if premium {
		return s.premiumLimit
	}
	return s.dailyLimit
}

// prepare makes sure the row exists and belongs to today.
func (s *usageLimiter) prepare(ctx context.Context, repo repository.UsageLimitRepository, studentID, feature string) error {
	today := s.today()
	if err := repo.EnsureExists(ctx, studentID, feature, today); err != nil {
		return err
	}
	return repo.ResetIfStale(ctx, studentID, feature, today)
}

func (s *usageLimiter) CheckAndReserve(ctx context.Context, studentID, feature string) (*UsageDecision, error) {
	var decision *UsageDecision
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.prepare(ctx, repo, studentID, feature); err != nil {
			return err
		}
		record, err := repo.Find(ctx, studentID, feature)
		if err != nil {
			return err
		}
		limit := s.limitFor(record.IsPremium)
		decision = &UsageDecision{
			Allowed:   record.DailyUsage < limit,
			Limit:     limit,
			Used:      record.DailyUsage,
			ResetTime: usageResetTime,
		}
		return nil
	})
	if err != nil {
		return nil, storeError("usage.CheckAndReserve", err)
	}
	if !decision.Allowed {
		log.Info().Str("studentID", studentID).Str("feature", feature).
			Int("used", decision.Used).Int("limit", decision.Limit).
			Msg("Usage limit reached")
	}
	return decision, nil
}

func (s *usageLimiter) Admit(ctx context.Context, studentID, feature string) (*UsageDecision, error) {
	var decision *UsageDecision
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		decision, err = s.Reserve(ctx, tx, studentID, feature)
		return err
	})
	if err != nil {
		return nil, passThrough("usage.Admit", err)
	}
	return decision, nil
}

func (s *usageLimiter) Reserve(ctx context.Context, tx *gorm.DB, studentID, feature string) (*UsageDecision, error) {
	repo := s.repo.WithTx(tx)
	if err := s.prepare(ctx, repo, studentID, feature); err != nil {
		return nil, storeError("usage.Reserve", err)
	}
	admitted, err := repo.IncrementIfBelow(ctx, studentID, feature, s.dailyLimit, s.premiumLimit)
	if err != nil {
		return nil, storeError("usage.Reserve", err)
	}
	record, err := repo.Find(ctx, studentID, feature)
	if err != nil {
		return nil, storeError("usage.Reserve", err)
	}

	used := record.DailyUsage
	if admitted {
		used--
	}
	decision := &UsageDecision{
		Allowed:   admitted,
		Limit:     s.limitFor(record.IsPremium),
		Used:      used,
		ResetTime: usageResetTime,
	}
	if !admitted {
		log.Info().Str("studentID", studentID).Str("feature", feature).
			Int("used", decision.Used).Int("limit", decision.Limit).
			Msg("Usage limit reached")
	}
	return decision, nil
}

func (s *usageLimiter) RecordUsage(ctx context.Context, studentID, feature string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.prepare(ctx, repo, studentID, feature); err != nil {
			return err
		}
		return repo.Increment(ctx, studentID, feature)
	})
	if err != nil {
		return storeError("usage.RecordUsage", err)
	}
	return nil
}

func (s *usageLimiter) SetPremium(ctx context.Context, studentID, feature string, premium bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.EnsureExists(ctx, studentID, feature, s.today()); err != nil {
			return err
		}
		return repo.SetPremium(ctx, studentID, feature, premium)
	})
	if err != nil {
		return storeError("usage.SetPremium", err)
	}
	log.Info().Str("studentID", studentID).Str("feature", feature).Bool("premium", premium).Msg("Premium flag updated")
	return nil
}
