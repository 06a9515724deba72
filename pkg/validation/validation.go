// Package validation checks contact-form submissions before they are stored.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Submission is the part of a request body the service cares about.
// Every rule runs; failures are collected rather than short-circuited.
type Submission struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"email"`
	Message string `json:"message" validate:"trimmin=5"`
}

// FieldError describes one failed rule in the shape the front-end reads.
type FieldError struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location"`
}

// Errors is the full list of failed rules for one submission.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Msg)
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

var messages = map[string]string{
	"name":    "Name is required",
	"email":   "Valid email required",
	"message": "Message too short",
}

// Validator runs the submission rules.
type Validator struct {
	v *validator.Validate
}

// New registers the custom rules and json field naming.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("trimmin", trimMin); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Validate returns every failed rule, in field order. An empty result means the submission is valid.
func (val *Validator) Validate(s Submission) Errors {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{bodyError(err.Error())}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := messages[field]
		if !ok {
			msg = fmt.Sprintf("Invalid value (%s)", fe.Tag())
		}
		out = append(out, FieldError{
			Type:     "field",
			Value:    reportedValue(field, fmt.Sprint(fe.Value())),
			Msg:      msg,
			Path:     field,
			Param:    field,
			Location: "body",
		})
	}
	return out
}

// InvalidBody is the single error reported when the body is not parseable JSON.
func InvalidBody() Errors {
	return Errors{bodyError("Invalid JSON body")}
}

func bodyError(msg string) FieldError {
	return FieldError{Type: "body", Msg: msg, Location: "body"}
}

// reportedValue echoes trimmed values for the fields that are trimmed before checking.
func reportedValue(field, v string) string {
	if field == "email" {
		return v
	}
	return strings.TrimSpace(v)
}

// trimMin checks the trimmed string is at least param characters long.
func trimMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("trimmin: bad param %q", fl.Param()))
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// FromFields builds a Submission from a decoded JSON object. Missing and null
// fields become empty, scalars are stringified, objects and arrays count as empty.
// Unknown keys are ignored.
func FromFields(fields map[string]any) Submission {
	return Submission{
		Name:    stringify(fields["name"]),
		Email:   stringify(fields["email"]),
		Message: stringify(fields["message"]),
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
