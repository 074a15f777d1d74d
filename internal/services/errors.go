package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// FieldError marks a request value that failed per-field validation. The
// field name travels with the error so handlers can surface it.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s': %s", e.Field, e.Reason)
}

func newFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// isUniqueViolation reports whether err comes from a unique index. Postgres
// and the sqlite driver used in tests word the error differently, so match
// both in addition to gorm's translated sentinel.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
