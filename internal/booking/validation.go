package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wolfman30/jwbeauty-studio/internal/calendar"
)

// ErrInvalidDraft matches every ValidationErrors value via errors.Is.
var ErrInvalidDraft = errors.New("booking: invalid draft")

const (
	msgDateFormat = "must be a date in YYYY-MM-DD format"
	msgDatePast   = "must not be before today"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

func (v ValidationErrors) Unwrap() error { return ErrInvalidDraft }

// Fields returns the names of the invalid fields in order.
func (v ValidationErrors) Fields() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Field)
	}
	return out
}

// Has reports whether field failed validation.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Validator enforces the required-field rules of the booking form. It does
// not check phone formats or names: the form only requires non-empty input,
// a real YYYY-MM-DD date and one of the three slots.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		panic(fmt.Sprintf("booking: register isodate validator: %v", err))
	}
	return &Validator{validate: v}
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := calendar.ParseDate(fl.Field().String())
	return err == nil
}

// Validate checks the trimmed draft and returns ValidationErrors on failure.
func (v *Validator) Validate(d Draft) error {
	d = d.Trimmed()
	if err := v.validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateOn is Validate plus the calendar rule: a date strictly before
// today is rejected.
func (v *Validator) ValidateOn(d Draft, today calendar.Date) error {
	var errs ValidationErrors
	if err := v.Validate(d); err != nil && !errors.As(err, &errs) {
		return err
	}
	if date, err := calendar.ParseDate(strings.TrimSpace(d.Date)); err == nil && date.Before(today) {
		errs = append(errs, ValidationError{Field: "date", Message: msgDatePast})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// dateError reports a rejected date selection as a field error.
func dateError(err error) ValidationError {
	if errors.Is(err, calendar.ErrPastDate) {
		return ValidationError{Field: "date", Message: msgDatePast}
	}
	return ValidationError{Field: "date", Message: msgDateFormat}
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "isodate":
			msg = msgDateFormat
		case "oneof":
			msg = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			msg = fmt.Sprintf("failed %s validation", fe.Tag())
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: msg})
	}
	return out
}
