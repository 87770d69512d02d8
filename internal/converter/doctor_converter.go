package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO,
// rendering the stored UTC window on the engine's wall clock.
func DoctorToResponse(doctor *entity.Doctor, engine *availability.Engine) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                      doctor.ID,
		ClinicID:                doctor.ClinicID,
		Name:                    doctor.Name,
		AvatarImageURL:          doctor.AvatarImageURL,
		Specialty:               doctor.Specialty,
		Gender:                  doctor.Gender,
		AppointmentPriceInCents: doctor.AppointmentPriceInCents,
		AppointmentPrice:        FormatCents(doctor.AppointmentPriceInCents),
		Availability: dto.AvailabilityResponse{
			FromWeekDay: doctor.AvailabilityFromWeekDay,
			ToWeekDay:   doctor.AvailabilityToWeekDay,
			FromTimeUTC: doctor.AvailabilityFromTime,
			ToTimeUTC:   doctor.AvailabilityToTime,
		},
		CreatedAt: doctor.CreatedAt,
		UpdatedAt: doctor.UpdatedAt,
	}

	if engine != nil {
		if window, err := doctor.Window(); err == nil {
			response.Availability.Display = DisplayWindowToResponse(engine.ToDisplayWindow(window))
		}
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor, engine *availability.Engine) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i], engine)
	}
	return responses
}

func DisplayWindowToResponse(w availability.DisplayWindow) *dto.DisplayWindowResponse {
	return &dto.DisplayWindowResponse{
		From: displayPoint(w.From),
		To:   displayPoint(w.To),
	}
}

func displayPoint(p availability.DisplayPoint) dto.DisplayPointResponse {
	return dto.DisplayPointResponse{
		WeekDay:     int(p.Weekday),
		WeekDayName: p.Weekday.String(),
		Time:        p.Time.HHMM(),
	}
}
