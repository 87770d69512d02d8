package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// actorFromContext reads the authenticated user and clinic set by the HTTP middleware.
func actorFromContext(ctx context.Context) service.Actor {
	userID, _ := middleware.GetUserIDFromContext(ctx)
	clinicID, _ := middleware.GetClinicIDFromContext(ctx)
	return service.NewActor(userID, clinicID)
}
