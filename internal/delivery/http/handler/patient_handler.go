package handler

import (
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}

	var req dto.UpsertPatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), clinicID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientEmailExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrInvalidDateFormat, usecase.ErrBirthDateInFuture:
			response.FieldError(w, "birth_date", err.Error())
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	patientID, ok := uuidParam(w, r, "Invalid patient ID")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), clinicID, patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}

	patients, err := h.patientUsecase.GetAllPatients(r.Context(), clinicID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	patientID, ok := uuidParam(w, r, "Invalid patient ID")
	if !ok {
		return
	}

	var req dto.UpsertPatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), clinicID, patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrPatientEmailExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrInvalidDateFormat, usecase.ErrBirthDateInFuture:
			response.FieldError(w, "birth_date", err.Error())
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromContext(w, r)
	if !ok {
		return
	}
	patientID, ok := uuidParam(w, r, "Invalid patient ID")
	if !ok {
		return
	}

	err := h.patientUsecase.DeletePatient(r.Context(), clinicID, patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
