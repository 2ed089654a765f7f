package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	ConstraintUsersExternalID = "users_external_id_key"
	ConstraintUsersUsername   = "users_username_key"
	ConstraintFollowsPkey     = "follows_pkey"
	ConstraintLikesPkey       = "likes_pkey"

	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

var (
	ErrConflict         = errors.New("unique constraint violation")
	ErrMissingReference = errors.New("referenced row does not exist")
	errNoDB             = errors.New("postgres repository has no database handle")
)

// ConflictError reports which uniqueness constraint rejected a write.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict.Error(), e.Constraint)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ConflictConstraint returns the constraint name if err is a uniqueness conflict.
func ConflictConstraint(err error) (string, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Constraint, true
	}
	return "", false
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return &ConflictError{Constraint: pgErr.ConstraintName}
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: %s", ErrMissingReference, pgErr.ConstraintName)
	}
	return err
}
