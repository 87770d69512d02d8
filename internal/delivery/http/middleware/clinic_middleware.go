package middleware

import (
	"context"
	"net/http"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/pkg/response"

	"github.com/google/uuid"
)

// ClinicResolver finds the clinic a user acts on behalf of; nil when none.
type ClinicResolver interface {
	ResolveClinic(ctx context.Context, userID uuid.UUID) (*entity.Clinic, error)
}

type ClinicMiddleware struct {
	resolver ClinicResolver
}

func NewClinicMiddleware(resolver ClinicResolver) *ClinicMiddleware {
	return &ClinicMiddleware{resolver: resolver}
}

// RequireClinic must run after Authenticate. It rejects users without a clinic
// and stores the clinic ID in the request context.
func (m *ClinicMiddleware) RequireClinic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User information not found")
			return
		}

		clinic, err := m.resolver.ResolveClinic(r.Context(), userID)
		if err != nil {
			response.InternalServerError(w, "Failed to resolve clinic")
			return
		}
		if clinic == nil {
			response.Forbidden(w, "Clinic not found, create a clinic first")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClinicID(r.Context(), clinic.ID)))
	})
}

// ContextWithClinicID stores the tenant clinic in ctx.
func ContextWithClinicID(ctx context.Context, clinicID uuid.UUID) context.Context {
	return context.WithValue(ctx, ClinicIDKey, clinicID)
}

// GetClinicIDFromContext extracts clinic ID from context
func GetClinicIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	clinicID, ok := ctx.Value(ClinicIDKey).(uuid.UUID)
	return clinicID, ok
}
