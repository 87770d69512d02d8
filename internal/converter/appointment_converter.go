package converter

import (
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// loc is the clinic wall clock used for LocalDate and LocalTime.
func AppointmentToResponse(appointment *entity.Appointment, loc *time.Location) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	local := appointment.AppointmentDateTime.In(loc)
	response := &dto.AppointmentResponse{
		ID:                      appointment.ID,
		ClinicID:                appointment.ClinicID,
		AppointmentDateTime:     appointment.AppointmentDateTime.UTC(),
		LocalDate:               local.Format(dateLayout),
		LocalTime:               local.Format("15:04"),
		AppointmentPriceInCents: appointment.AppointmentPriceInCents,
		AppointmentPrice:        FormatCents(appointment.AppointmentPriceInCents),
		CreatedAt:               appointment.CreatedAt,
	}

	// Include patient and doctor info if preloaded
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = &dto.AppointmentPatientInfo{
			ID:    appointment.Patient.ID,
			Name:  appointment.Patient.Name,
			Email: appointment.Patient.Email,
		}
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = &dto.AppointmentDoctorInfo{
			ID:        appointment.Doctor.ID,
			Name:      appointment.Doctor.Name,
			Specialty: appointment.Doctor.Specialty,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment, loc *time.Location) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], loc)
	}
	return responses
}
