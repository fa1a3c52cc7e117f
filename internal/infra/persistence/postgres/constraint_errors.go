package postgres

import (
	"strings"

	"passport/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// mapUniqueViolation translates a PostgreSQL unique-constraint violation into
// the per-column duplicate sentinel, keyed by the violated index name. Returns
// nil when the error is not a uniqueness violation.
func mapUniqueViolation(err error) error {
	if !isUniqueConstraintViolation(err) {
		return nil
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "idx_users_name"):
		return repository.ErrDuplicateName
	case strings.Contains(errMsg, "idx_users_email"):
		return repository.ErrDuplicateEmail
	default:
		// A uniqueness violation on an index we do not recognize still must
		// not pass as success.
		return errors.Wrap(err, "unrecognized unique constraint violation")
	}
}

func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's translated duplicate key error first.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// The postgres driver reports SQLSTATE 23505 for unique_violation; GORM
	// only translates it when TranslateError is enabled, so match the raw
	// message as a backstop.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "duplicate key")
}
