package service

import (
	"errors"

	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// storeError logs the raw cause and returns the generic store error.
func storeError(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("Store operation failed")
	return apperror.Store(op, err)
}

// lookupError maps a missing row to NotFound with msg and anything else to a store error.
func lookupError(op, msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(op, msg)
	}
	return storeError(op, err)
}

// passThrough keeps errors that already carry a kind and wraps the rest as store errors.
func passThrough(op string, err error) error {
	var appErr *apperror.Error
	var quotaErr *apperror.QuotaExceededError
	if errors.As(err, &appErr) || errors.As(err, &quotaErr) {
		return err
	}
	return storeError(op, err)
}
