package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite. Only
// lock contention is worth retrying; everything else is permanent.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}

	return NonRetryable
}

// sqliteConstraint reports the failed constraint kind and the
// "table.column" detail from messages such as
// "UNIQUE constraint failed: users.email".
func sqliteConstraint(err error) (kind, detail string) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return "", ""
	}

	msg := sqliteErr.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		detail = msg[i+2:]
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return "unique", detail
	case sqlite3.ErrConstraintForeignKey:
		return "foreign_key", detail
	}

	return "", detail
}
