package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// clinicIDFromContext writes a 403 and returns false when no clinic was resolved for the request.
func clinicIDFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	clinicID, ok := middleware.GetClinicIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Clinic not found, create a clinic first")
		return uuid.Nil, false
	}
	return clinicID, true
}

// uuidParam parses the {id} route variable, writing a 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate reads a JSON body into req and runs struct validation,
// writing the 400 itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}
