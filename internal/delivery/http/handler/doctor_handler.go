package handler

import (
	"errors"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}

	var req dto.UpsertDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), clinicID, &req)
	if err != nil {
		if writeAvailabilityError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	doctorID, ok := uuidParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), clinicID, doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}

	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context(), clinicID)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	doctorID, ok := uuidParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	var req dto.UpsertDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), clinicID, doctorID, &req)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		if writeAvailabilityError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	doctorID, ok := uuidParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	err := h.doctorUsecase.DeleteDoctor(r.Context(), clinicID, doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// GetAvailableSlots lists bookable times for ?date=YYYY-MM-DD, today when omitted.
func (h *DoctorHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	doctorID, ok := uuidParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	slots, err := h.doctorUsecase.GetAvailableSlots(r.Context(), clinicID, doctorID, r.URL.Query().Get("date"))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat, usecase.ErrDateInPast:
			response.FieldError(w, "date", err.Error())
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

// writeAvailabilityError maps availability validation failures to field errors.
func writeAvailabilityError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, usecase.ErrInvalidAvailabilityWeekDay):
		response.FieldError(w, "availability_from_week_day", err.Error())
	case errors.Is(err, usecase.ErrInvalidAvailabilityTime), errors.Is(err, usecase.ErrAvailabilityCrossesMidnight):
		response.FieldError(w, "availability_to_time", err.Error())
	case errors.Is(err, availability.ErrMalformedTimeOfDay):
		response.FieldError(w, "availability_from_time", err.Error())
	default:
		return false
	}
	return true
}
