package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prog6212/cmcs/backend/internal/domain"
)

// translateError maps driver errors onto the domain sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case errors.As(err, &pgErr):
		switch pgErr.ConstraintName {
		case "users_email_key":
			return domain.ErrDuplicateEmail
		case "claims_lecturer_id_fkey":
			return domain.ErrNotFound
		}
	}
	return err
}
