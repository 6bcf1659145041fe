package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jrc-public-school/school-service/internal/models"
)

// ValidationError describes a single failed rule on a request field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors is a collection of field validation failures
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any validation failure was recorded
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Validator wraps validator/v10 with the school's custom rules registered
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates struct tags and returns structured failures
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// registerBusinessRules registers custom business rule validators
func (v *Validator) registerBusinessRules() {
	// Class must be one of the enumerated grade levels (case-sensitive)
	v.validate.RegisterValidation("class_level", func(fl validator.FieldLevel) bool {
		return models.IsValidClass(fl.Field().String())
	})

	// News type enumeration
	v.validate.RegisterValidation("news_type", func(fl validator.FieldLevel) bool {
		t := models.NewsType(fl.Field().String())
		switch t {
		case models.NewsNotice, models.NewsHoliday, models.NewsExam, models.NewsEvent, models.NewsGeneral:
			return true
		}
		return false
	})

	// Admission funnel status enumeration
	v.validate.RegisterValidation("admission_status", func(fl validator.FieldLevel) bool {
		s := models.AdmissionStatus(fl.Field().String())
		switch s {
		case models.AdmissionPending, models.AdmissionContacted, models.AdmissionAdmitted, models.AdmissionRejected:
			return true
		}
		return false
	})

	// Indian mobile number: 10 digits, optional +91 prefix
	v.validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		m := strings.TrimPrefix(fl.Field().String(), "+91")
		if len(m) != 10 {
			return false
		}
		for _, c := range m {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	})
}

// ToValidationErrors converts validator/v10 errors into structured failures
func ToValidationErrors(err error) ValidationErrors {
	var result ValidationErrors

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			Field:   "request",
			Message: err.Error(),
			Rule:    "struct",
		}}
	}

	for _, fe := range validationErrs {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}

	return result
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "class_level":
		return "is not a recognised class"
	case "news_type":
		return "is not a valid news type"
	case "admission_status":
		return "is not a valid admission status"
	case "mobile":
		return "is not a valid mobile number"
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
