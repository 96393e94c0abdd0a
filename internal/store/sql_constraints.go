package store

import (
	"strings"

	"github.com/jackc/pgerrcode"
)

// constraintError translates a unique or foreign key violation raised by
// either driver into a domain sentinel. It returns nil when err is not a
// constraint violation the repositories know about.
func constraintError(err error) error {
	if err == nil {
		return nil
	}

	if code, constraint := postgresConstraint(err); code != "" {
		switch code {
		case pgerrcode.UniqueViolation:
			return uniqueViolation(constraint)
		case pgerrcode.ForeignKeyViolation:
			return ErrNoUserWasFound
		}
	}

	kind, detail := sqliteConstraint(err)
	switch kind {
	case "unique":
		return uniqueViolation(detail)
	case "foreign_key":
		return ErrNoUserWasFound
	}

	return nil
}

func uniqueViolation(constraint string) error {
	switch {
	case strings.Contains(constraint, "username"):
		return ErrUsernameAlreadyExists
	case strings.Contains(constraint, "email"):
		return ErrEmailAlreadyExists
	default:
		return ErrAlreadyExists
	}
}
