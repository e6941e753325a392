package video

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/vidlike/internal/errors"
)

// handlePostgreSQLError converts PostgreSQL-specific errors to appropriate AppError codes
func handlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	// Check if it's a PostgreSQL error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		// Not a PostgreSQL error, return generic internal error
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	// Map PostgreSQL error codes to AppError codes
	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		if strings.Contains(pgErr.ConstraintName, "pkey") {
			return apperrors.Wrap(pgErr, apperrors.CodeConflict, "video with this ID already exists")
		}
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "video already exists")

	case "23502": // NOT_NULL_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")

	case "23514": // CHECK_VIOLATION
		return handleCheckViolation(pgErr)

	case "42P01": // UNDEFINED_TABLE
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: table not found")

	case "42703": // UNDEFINED_COLUMN
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: column not found")

	case "08000", "08003", "08006": // CONNECTION_EXCEPTION variants
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection error")

	case "53300": // TOO_MANY_CONNECTIONS
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection limit reached")

	case "40001", "40P01": // SERIALIZATION_FAILURE, DEADLOCK_DETECTED
		return apperrors.Wrap(err, apperrors.CodeInternal, "concurrent update aborted")

	default:
		// Unknown PostgreSQL error, return with error code for debugging
		message := "database error (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, apperrors.CodeInternal, message)
	}
}

// handleCheckViolation provides specific error messages for the videos check constraints
func handleCheckViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	switch pgErr.ConstraintName {
	case "videos_duration_check":
		return apperrors.Wrap(pgErr, apperrors.CodeInvalidArg, "duration must not be negative")
	case "videos_likes_check":
		return apperrors.Wrap(pgErr, apperrors.CodeInvalidArg, "likes must equal the number of users in likedBy")
	default:
		return apperrors.Wrap(pgErr, apperrors.CodeInvalidArg, "data violates check constraint")
	}
}
