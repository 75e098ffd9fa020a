package postgres

import (
	"errors"
	"fmt"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories know how to explain to a client.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeStringTruncation    = "22001"
	codeInvalidTextRepr     = "22P02"
)

// translateError maps constraint and data errors onto the domain taxonomy.
// Anything else is wrapped with op and ends up as an internal fault.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicateCredential)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrRelatedNotFound)
		case codeNotNullViolation, codeCheckViolation, codeStringTruncation, codeInvalidTextRepr:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}
