package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasSQLState(err, pgUniqueViolation)
}

func isForeignKeyConstraintViolation(err error) bool {
	// Check for GORM's foreign key violation error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return hasSQLState(err, pgForeignKeyViolation)
}

func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, pgNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	// Check for GORM's check constraint violation error
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return hasSQLState(err, pgCheckViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}

	return false
}

// constraintViolation names the integrity constraint class err violates, or "" for any other error.
func constraintViolation(err error) string {
	switch {
	case isUniqueConstraintViolation(err):
		return "unique"
	case isForeignKeyConstraintViolation(err):
		return "foreign_key"
	case isNotNullConstraintViolation(err):
		return "not_null"
	case isCheckConstraintViolation(err):
		return "check"
	default:
		return ""
	}
}

// isTranslatedViolation reports violations the repositories map onto domain errors
// (duplicate favorite, category name taken, category in use, unknown category).
func isTranslatedViolation(kind string) bool {
	return kind == "unique" || kind == "foreign_key"
}
