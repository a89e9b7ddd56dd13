package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/unn-housing/service-booking/internal/domain"
	bookingDomain "github.com/unn-housing/service-booking/internal/domain/booking"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

// translateWriteError maps driver constraint errors onto domain errors.
// The boolean is false when err is not a recognized constraint violation.
func translateWriteError(err error) (*domain.DomainError, bool) {
	if err == nil {
		return nil, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return domain.NewValidationError(bookingDomain.MsgUnavailable), true
		case pgUniqueViolation:
			return domain.NewConflictError("resource already exists"), true
		case pgForeignKeyViolation:
			return domain.NewNotFoundMessage("referenced record not found"), true
		}
		return nil, false
	}

	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "UNIQUE constraint failed") {
		return domain.NewConflictError("resource already exists"), true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return domain.NewNotFoundMessage("referenced record not found"), true
	}
	return nil, false
}
