// Package validation registers the clinic domain's request tags on the shared validator.
package validation

import (
	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/pkg/validator"

	playground "github.com/go-playground/validator/v10"
)

// Rules returns the timeofday, weekday and specialty tags.
func Rules() []validator.Rule {
	return []validator.Rule{
		{
			Tag: "timeofday",
			Func: func(fl playground.FieldLevel) bool {
				_, err := availability.ParseTimeOfDay(fl.Field().String())
				return err == nil
			},
			Message: "must be a time of day (HH:MM or HH:MM:SS)",
		},
		{
			Tag: "weekday",
			Func: func(fl playground.FieldLevel) bool {
				return availability.ValidWeekday(int(fl.Field().Int()))
			},
			Message: "must be a weekday between 0 (Sunday) and 6 (Saturday)",
		},
		{
			Tag: "specialty",
			Func: func(fl playground.FieldLevel) bool {
				return entity.IsMedicalSpecialty(fl.Field().String())
			},
			Message: "must be a known medical specialty",
		},
	}
}

// New returns a validator with the domain tags registered.
func New() *validator.CustomValidator {
	return validator.NewValidator(Rules()...)
}
