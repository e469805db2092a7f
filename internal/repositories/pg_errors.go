package repositories

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "gearguard/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// conflictMessages maps unique constraints to the message shown to the caller.
var conflictMessages = map[string]string{
	"users_email_key":                  "User already exists",
	"users_one_admin_per_company":      "Company already has an admin",
	"companies_name_lower_key":         "Company already exists",
	"equipment_serial_number_key":      "Serial number already exists",
	"work_centers_code_key":            "Work center code already exists",
	"team_members_team_user_key":       "Member already in team",
	"work_center_assignments_pair_key": "Equipment already assigned to this work center",
}

// mapPgError turns constraint violations into HttpErrors. The database
// message stays in Err and is never shown to the caller.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		message, ok := conflictMessages[pgErr.ConstraintName]
		if !ok {
			message = "Record already exists"
		}
		return apperrors.NewHttpError(http.StatusConflict, message, err, nil)
	case pgForeignKeyViolation:
		return apperrors.NewHttpError(http.StatusBadRequest, "Referenced entity does not exist", err, nil)
	case pgCheckViolation:
		return apperrors.NewHttpError(http.StatusBadRequest, "Value is out of the allowed range", err, nil)
	}
	return err
}
