package common

import (
	"errors"

	"github.com/lib/pq"
)

var ErrRecordNotFound = errors.New("record not found")

// UniqueViolationError reports whether err is a postgres unique constraint
// violation on the named constraint.
func UniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// ForeignKeyError reports whether err is a postgres foreign key constraint
// violation on the named constraint.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}
