package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format accepted in requests.
const DateLayout = "2006-01-02"

// Rule is a custom tag registered by the caller. Message follows the field name
// in the formatted error, e.g. "must be a weekday".
type Rule struct {
	Tag     string
	Func    validator.Func
	Message string
}

type CustomValidator struct {
	validator *validator.Validate
	messages  map[string]string
}

func NewValidator(rules ...Rule) *CustomValidator {
	v := validator.New()

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})

	messages := make(map[string]string, len(rules))
	for _, rule := range rules {
		v.RegisterValidation(rule.Tag, rule.Func)
		messages[rule.Tag] = rule.Message
	}

	return &CustomValidator{
		validator: v,
		messages:  messages,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "gt":
				errors[field] = field + " must be greater than " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "isodate":
				errors[field] = field + " must be a date (YYYY-MM-DD)"
			case "uuid":
				errors[field] = field + " must be a valid UUID"
			default:
				if message, ok := cv.messages[e.Tag()]; ok {
					errors[field] = field + " " + message
				} else {
					errors[field] = field + " is invalid"
				}
			}
		}
	}

	return errors
}
