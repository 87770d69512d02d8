package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"clinic-scheduler/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintErrors(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "patients_email_key"})
	foreign := &pgconn.PgError{Code: "23503", ConstraintName: "appointments_doctor_id_fkey"}

	if !isDuplicateKeyError(unique, "email") {
		t.Error("wrapped unique violation on email should match")
	}
	if isDuplicateKeyError(unique, "phone") {
		t.Error("unique violation should only match its own constraint")
	}
	if isDuplicateKeyError(foreign, "doctor") {
		t.Error("foreign key violation is not a duplicate key")
	}
	if !isForeignKeyError(foreign, "doctor") {
		t.Error("foreign key violation on doctor should match")
	}
	if isForeignKeyError(errors.New("boom"), "doctor") {
		t.Error("plain errors never match")
	}
}

func TestActorFromContext(t *testing.T) {
	userID, clinicID := uuid.New(), uuid.New()
	ctx := middleware.ContextWithUser(context.Background(), userID, "staff@clinic.test", "token")
	ctx = middleware.ContextWithClinicID(ctx, clinicID)

	actor := actorFromContext(ctx)
	if actor.UserID == nil || *actor.UserID != userID {
		t.Errorf("UserID = %v, want %s", actor.UserID, userID)
	}
	if actor.ClinicID == nil || *actor.ClinicID != clinicID {
		t.Errorf("ClinicID = %v, want %s", actor.ClinicID, clinicID)
	}

	empty := actorFromContext(context.Background())
	if empty.UserID != nil || empty.ClinicID != nil {
		t.Errorf("expected empty actor, got %+v", empty)
	}
}
