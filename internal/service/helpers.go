package service

import (
	"errors"
	"time"

	"tradebooks/internal/apperr"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

func todayString() string {
	return time.Now().Format(dateLayout)
}

func dateInDays(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateLayout)
}

// notFoundOr converts a gorm missing-record error into the not-found taxonomy
// while letting genuine store failures propagate unchanged.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
