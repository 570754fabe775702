package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	cellPhoneRegex = regexp.MustCompile(`^[0-9]{11}$`)
	telPhoneRegex  = regexp.MustCompile(`^[0-9]{7,10}$`)
)

// ErrInvalidID is returned for path parameters that are not plain unsigned
// integers.
var ErrInvalidID = errors.New("invalid id parameter")

// ParseID parses a numeric path parameter. Anything but a plain unsigned
// integer is rejected here, before the value can reach a query.
func ParseID(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field := strings.ToLower(e.Field())
			switch e.Tag() {
			case "required":
				errors[field] = fmt.Sprintf("%s is required", e.Field())
			case "email":
				errors[field] = "Invalid email format"
			case "min":
				errors[field] = fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
			case "max":
				errors[field] = fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
			case "oneof":
				errors[field] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
			default:
				errors[field] = fmt.Sprintf("%s is invalid", e.Field())
			}
		}
	}

	return errors
}

// ValidateContactPhone checks a contact phone number against its phone type:
// cell numbers carry exactly 11 digits, telephone numbers 7 to 10.
func ValidateContactPhone(phoneType, phone string) error {
	switch phoneType {
	case "cell":
		if !cellPhoneRegex.MatchString(phone) {
			return fmt.Errorf("invalid cell phone number: must be exactly 11 digits")
		}
	case "telephone":
		if !telPhoneRegex.MatchString(phone) {
			return fmt.Errorf("invalid telephone number: must be between 7 and 10 digits")
		}
	default:
		return fmt.Errorf("unknown phone type %q", phoneType)
	}
	return nil
}

// ValidateDateRange enforces that a partnership's end date, when present,
// is strictly after its start date. Equal dates are rejected.
func ValidateDateRange(started time.Time, ended *time.Time) error {
	if ended == nil {
		return nil
	}
	if !ended.After(started) {
		return fmt.Errorf("date_ended must be strictly after date_started")
	}
	return nil
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
