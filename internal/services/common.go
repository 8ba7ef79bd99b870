// Package services holds the business rules behind the admin API. Services
// are plain values wired with repositories; a zero repository or DB falls
// back to the shared pool.
package services

import (
	"database/sql"
	"strings"

	intconfig "busadmin/internal/config"
	"busadmin/internal/domain"
)

func dbOrDefault(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

func pageOf[T any](items []T, total int, p domain.Pagination) domain.Page[T] {
	p.Total = total
	return domain.Page[T]{Items: items, Pagination: p}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
