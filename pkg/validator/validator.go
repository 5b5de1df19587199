package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ViolationKind enumerates the ways a field can fail validation.
type ViolationKind string

const (
	KindRequired   ViolationKind = "required"
	KindTooShort   ViolationKind = "too_short"
	KindTooLong    ViolationKind = "too_long"
	KindOutOfRange ViolationKind = "out_of_range"
	KindInvalid    ViolationKind = "invalid"
)

type Violation struct {
	Field string        `json:"field"`
	Kind  ViolationKind `json:"kind"`
	Param string        `json:"param,omitempty"`
}

// Message renders the violation the way it is shown to API clients.
func (v Violation) Message() string {
	switch v.Kind {
	case KindRequired:
		return v.Field + " is required"
	case KindTooShort:
		return v.Field + " must be at least " + v.Param + " characters"
	case KindTooLong:
		return v.Field + " must be at most " + v.Param + " characters"
	case KindOutOfRange:
		return v.Field + " is out of range (" + v.Param + ")"
	default:
		return v.Field + " is invalid"
	}
}

// Result is the outcome of Check. A Result with violations is also an error,
// so use cases can return it directly.
type Result struct {
	Violations []Violation
}

func (r Result) OK() bool {
	return len(r.Violations) == 0
}

func (r Result) Error() string {
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Message()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields maps each failing field to its message.
func (r Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Violations))
	for _, v := range r.Violations {
		out[v.Field] = v.Message()
	}
	return out
}

// Has reports whether field failed with the given kind.
func (r Result) Has(field string, kind ViolationKind) bool {
	for _, v := range r.Violations {
		if v.Field == field && v.Kind == kind {
			return true
		}
	}
	return false
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Check validates i and converts tag failures into enumerated violations.
// Errors that are not field failures (e.g. i is not a struct) come back as a
// single KindInvalid violation.
func (cv *CustomValidator) Check(i interface{}) Result {
	err := cv.validator.Struct(i)
	if err == nil {
		return Result{}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Result{Violations: []Violation{{Field: "_", Kind: KindInvalid}}}
	}

	res := Result{Violations: make([]Violation, 0, len(validationErrors))}
	for _, e := range validationErrors {
		res.Violations = append(res.Violations, Violation{
			Field: e.Field(),
			Kind:  kindOf(e),
			Param: e.Param(),
		})
	}
	return res
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	var res Result
	if errors.As(err, &res) {
		return res.Fields()
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{}
	}
	out := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		v := Violation{Field: e.Field(), Kind: kindOf(e), Param: e.Param()}
		out[v.Field] = v.Message()
	}
	return out
}

func kindOf(e validator.FieldError) ViolationKind {
	switch e.Tag() {
	case "required", "required_with":
		return KindRequired
	case "min":
		if isNumeric(e.Kind()) {
			return KindOutOfRange
		}
		return KindTooShort
	case "max":
		if isNumeric(e.Kind()) {
			return KindOutOfRange
		}
		return KindTooLong
	case "gte", "lte", "gt", "lt", "gtefield":
		return KindOutOfRange
	default:
		return KindInvalid
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
