package utils

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	// formatted message cache keyed by field_tag
	validationErrorsCache = make(map[string]string)
)

func init() {
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("listingyear", validateListingYear)
}

// Validator wraps the shared validator instance
type Validator struct {
	validator *validator.Validate
}

// NewValidator returns a validator backed by the shared instance
func NewValidator() *Validator {
	return &Validator{
		validator: validate,
	}
}

// Validate checks a struct's validation tags
func (v *Validator) Validate(obj interface{}) error {
	if err := v.validator.Struct(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// formatValidationErrors converts field errors into a message map
func formatValidationErrors(errs []validator.FieldError) error {
	errorMap := make(map[string]string)

	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		cacheKey := fmt.Sprintf("%s_%s", field, tag)
		if msg, exists := validationErrorsCache[cacheKey]; exists {
			errorMap[field] = msg
			continue
		}

		msg := getErrorMessage(field, tag, param)
		validationErrorsCache[cacheKey] = msg
		errorMap[field] = msg
	}

	return &ValidationError{Errors: errorMap}
}

// ValidationError carries per-field messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("Validation failed: %v", ve.Errors)
}

// getErrorMessage builds a readable message for one failed rule
func getErrorMessage(field, tag, param string) string {
	errorMessages := map[string]string{
		"required":    "%s is required",
		"email":       "%s is not a valid email address",
		"min":         "%s must be at least %s characters",
		"max":         "%s must be at most %s characters",
		"gt":          "%s must be greater than %s",
		"gte":         "%s must be greater than or equal to %s",
		"lt":          "%s must be less than %s",
		"lte":         "%s must be less than or equal to %s",
		"oneof":       "%s must be one of: %s",
		"password":    "%s must contain upper and lower case letters and a digit",
		"username":    "%s may only contain letters, digits and underscores, and must start with a letter",
		"phone":       "%s is not a valid phone number",
		"listingyear": "%s must be between 1970 and next year",
	}

	if tmpl, exists := errorMessages[tag]; exists {
		if param != "" {
			return fmt.Sprintf(tmpl, field, param)
		}
		return fmt.Sprintf(tmpl, field)
	}
	return fmt.Sprintf("%s failed validation rule %s", field, tag)
}

// validatePassword requires upper case, lower case and a digit
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// validateUsername requires a letter-lead alphanumeric name
func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// validatePhone accepts international-format digits
func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// validateListingYear bounds a car's model year to 1970..currentYear+1
func validateListingYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1970 && year <= int64(time.Now().Year()+1)
}
