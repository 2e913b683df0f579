// Package sqlerr handles database driver errors.
//
// It classifies PostgreSQL errors by SQLSTATE and converts them into
// user-friendly application errors (e.g. a unique violation on members.cin
// becomes a 400 "A member with this Cin already exists").
package sqlerr

import "fmt"

// Code is the application-level classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	ConnectionFailure   Code = "connection_failure"
)

// SQLSTATE values, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlStateNotNullViolation    = "23502"
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
	sqlStateExclusionViolation  = "23P01"
	sqlStateConnectionClass     = "08"
)

// Severity mirrors the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode classifies a SQLSTATE.
func MapCode(sqlState string) Code {
	switch sqlState {
	case sqlStateNotNullViolation:
		return NotNullViolation
	case sqlStateForeignKeyViolation:
		return ForeignKeyViolation
	case sqlStateUniqueViolation:
		return UniqueViolation
	case sqlStateCheckViolation:
		return CheckViolation
	case sqlStateExclusionViolation:
		return ExclusionViolation
	}
	if len(sqlState) == 5 && sqlState[:2] == sqlStateConnectionClass {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity normalizes a severity string; unknown values become ERROR.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}
