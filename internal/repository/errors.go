package repository

import (
	"errors"

	"billetera-ia/pkg/postgres"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case postgres.IsUniqueViolation(err):
		return ErrDuplicate
	default:
		return err
	}
}
