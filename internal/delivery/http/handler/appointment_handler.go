package handler

import (
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), clinicID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrOutsideAvailability, usecase.ErrInvalidAppointmentTime:
			response.FieldError(w, "appointment_time", err.Error())
		case usecase.ErrDateInPast, usecase.ErrInvalidDateFormat:
			response.FieldError(w, "appointment_date", err.Error())
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	appointmentID, ok := uuidParam(w, r, "Invalid appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), clinicID, appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// GetAllAppointments accepts optional doctor_id, patient_id, from and to query parameters.
func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := dto.ListAppointmentsQuery{
		DoctorID:  q.Get("doctor_id"),
		PatientID: q.Get("patient_id"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointments, err := h.appointmentUsecase.GetAllAppointments(r.Context(), clinicID, &query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange:
			response.BadRequest(w, err.Error())
		case usecase.ErrDoctorNotFound, usecase.ErrPatientNotFound:
			response.BadRequest(w, "Invalid filter ID")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	appointmentID, ok := uuidParam(w, r, "Invalid appointment ID")
	if !ok {
		return
	}

	err := h.appointmentUsecase.DeleteAppointment(r.Context(), clinicID, appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
