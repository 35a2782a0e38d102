package postgres

import (
	"errors"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes translated into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

// mapUserInsertError names the column that collided so registration can
// report it.
func mapUserInsertError(err error) error {
	pgErr, ok := asPgError(err, codeUniqueViolation)
	if !ok {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintUsersUsername:
		return domain.ErrUsernameExists
	case constraintUsersEmail:
		return domain.ErrEmailExists
	}
	return domain.ErrUserConflict
}

func mapUserUpdateError(err error) error {
	if _, ok := asPgError(err, codeUniqueViolation); ok {
		return domain.ErrUserConflict
	}
	return err
}

func mapTaskWriteError(err error) error {
	if _, ok := asPgError(err, codeCheckViolation); ok {
		return domain.ErrInvalidTaskState
	}
	if _, ok := asPgError(err, codeForeignKeyViolation); ok {
		return domain.ErrUserNotFound
	}
	return err
}

// requireAffected reports notFound when a scoped UPDATE/DELETE matched no row.
func requireAffected(tag pgconn.CommandTag, notFound error) error {
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func asPgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}
