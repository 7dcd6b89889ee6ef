package errs

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Postgres SQLSTATE codes the store reports.
const (
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
	pgInsufficientPrivilege = "42501"
	pgUndefinedColumn       = "42703"
	pgUndefinedTable        = "42P01"
)

// permissionPattern matches store messages produced by row level security,
// missing grants or an auth gateway in front of the store.
var permissionPattern = regexp.MustCompile(`(?i)permission|row level security|RLS|forbidden|not authorized|401|403`)

// PermissionGuidance is appended to permission failures so the operator
// knows where to look.
const PermissionGuidance = "If you use Row Level Security (RLS), allow public inserts or require authentication. For quick testing you can disable RLS on the table."

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// StoreMessage returns the message the store attached to err. For Postgres
// errors that is the server message without the SQLSTATE suffix.
func StoreMessage(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Message != "" {
		return pgErr.Message
	}
	if apiErr, ok := As(err); ok && apiErr.Cause != nil {
		return StoreMessage(apiErr.Cause)
	}
	return err.Error()
}

// IsPermissionError reports whether err was caused by the store refusing the
// operation for authorization reasons.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege {
		return true
	}
	return permissionPattern.MatchString(StoreMessage(err))
}

// NewPermissionError wraps a store refusal with guidance on row level security.
func NewPermissionError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrPermissionDenied,
		Details:    fmt.Sprintf("%s %s blocked: %s. %s", operation, entity, StoreMessage(cause), PermissionGuidance),
		Cause:      cause,
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause == nil {
		return &ApiErr{
			StatusCode: http.StatusInternalServerError,
			err:        ErrDatabaseQuery,
			Details:    details,
		}
	}

	if apiErr, ok := As(cause); ok {
		return apiErr
	}

	if IsPermissionError(cause) {
		return NewPermissionError(operation, entity, cause)
	}

	var pgErr *pgconn.PgError
	if errors.As(cause, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
				Details:    details,
				Cause:      cause,
			}
		case pgForeignKeyViolation:
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        fmt.Errorf("invalid reference in %s", entity),
				Details:    "The referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		case pgUndefinedColumn, pgUndefinedTable:
			return &ApiErr{
				StatusCode: http.StatusInternalServerError,
				err:        ErrDatabaseQuery,
				Details:    fmt.Sprintf("%s: %s", details, pgErr.Message),
				Cause:      cause,
			}
		}
	}

	errStr := cause.Error()
	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound), strings.Contains(errStr, "not found"):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case strings.Contains(errStr, "duplicate key"):
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
			Details:    details,
			Cause:      cause,
		}
	case strings.Contains(errStr, "connection"), strings.Contains(errStr, "dial"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
