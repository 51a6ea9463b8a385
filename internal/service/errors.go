package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isNotFound reports whether err is the store's missing-row error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isUniqueViolation detects a uniqueness-constraint failure. SQLite surfaces
// these as "UNIQUE constraint failed: table.column"; GORM translates some
// drivers' variants into ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
