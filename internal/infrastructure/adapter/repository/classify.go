package repository

import "strings"

// Postgres reports constraint and concurrency failures through driver error
// text. The repositories translate those into domain errors; matching on the
// message keeps the translation driver-agnostic across pgx versions.

// isDuplicateKey reports whether the error is a unique constraint violation
// (SQLSTATE 23505).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

// isSerializationConflict reports whether the error is a deadlock or
// serialization failure (SQLSTATE 40001, 40P01). Under SERIALIZABLE
// transactions these are benign races that map to ErrTransitionConflict.
func isSerializationConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "SQLSTATE 40001") ||
		strings.Contains(msg, "SQLSTATE 40P01")
}
