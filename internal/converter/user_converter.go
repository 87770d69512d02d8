package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// clinic may be nil when the user has not created or joined one yet.
func UserToResponse(user *entity.User, clinic *entity.Clinic) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Clinic:    ClinicToResponse(clinic),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}
	return &dto.ClinicResponse{
		ID:        clinic.ID,
		Name:      clinic.Name,
		CreatedAt: clinic.CreatedAt,
	}
}
