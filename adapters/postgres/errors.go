package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"hormoiq/domain/core"
	apperrors "hormoiq/internal/errors"

	"github.com/lib/pq"
)

// Postgres error codes the repositories translate
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// translate maps driver errors onto domain errors. notFound is returned for
// sql.ErrNoRows; everything unrecognised becomes a DATABASE_ERROR.
func translate(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", core.ErrProfileNotFound, pqErr.Detail)
		case uniqueViolation:
			return apperrors.Conflict(pqErr.Message)
		case checkViolation:
			return core.NewValidationError(pqErr.Constraint, pqErr.Message)
		}
	}
	return apperrors.DatabaseError(op, err)
}
