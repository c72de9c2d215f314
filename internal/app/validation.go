package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/cesargomez89/mekkompis/internal/constants"
)

// FieldError is one failed check. Field is empty for request-level
// messages such as missing required fields.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects everything wrong with an input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return strings.Join(msgs, "; ")
}

// ToMap keys field-level messages by field name. Request-level messages
// are left out; they only appear in Error.
func (e *ValidationError) ToMap() map[string]string {
	result := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field != "" {
			result[f.Field] = f.Message
		}
	}
	return result
}

// Invalid builds a ValidationError from a single request-level message.
func Invalid(message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Message: message}}}
}

type validator struct {
	errs []FieldError
}

func (v *validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}

func (v *validator) year(year *int64, now time.Time) {
	if year == nil {
		return
	}
	maxYear := int64(now.Year() + 1)
	if *year < constants.MinVehicleYear || *year > maxYear {
		v.add("year", fmt.Sprintf("måste vara mellan %d och %d", constants.MinVehicleYear, maxYear))
	}
}

func (v *validator) nonNegative(field string, n *int64) {
	if n != nil && *n < 0 {
		v.add(field, "får inte vara negativ")
	}
}

func (v *validator) nonNegativeFloat(field string, n *float64) {
	if n != nil && *n < 0 {
		v.add(field, "får inte vara negativ")
	}
}

// date accepts YYYY-MM-DD no later than one month after today.
func (v *validator) date(value string, now time.Time) {
	d, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		v.add("date", "ogiltigt datum (förväntat format: ÅÅÅÅ-MM-DD)")
		return
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today.AddDate(0, 1, 0)) {
		v.add("date", "får inte ligga mer än en månad fram i tiden")
	}
}

func (v *validator) quantity(q *int64) {
	if q != nil && *q < constants.MinQuantity {
		v.add("quantity", "måste vara minst 1")
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
