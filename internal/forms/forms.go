// Package forms collects per-field validation messages for HTML forms.
package forms

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonField holds errors that don't belong to a single input.
const NonField = "__all__"

const RequiredMessage = "Обязательное поле."

// Errors maps a form field name to its messages. It is returned as an error
// by services so handlers can re-render the form with inline messages.
type Errors map[string][]string

func FieldError(field, message string) Errors {
	return Errors{field: {message}}
}

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for field, or "".
func (e Errors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return strings.Join(parts, ", ")
}

// AsErrors reports whether err carries field errors.
func AsErrors(err error) (Errors, bool) {
	var fe Errors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Required trims value and records a RequiredMessage for field when nothing is left.
func (e Errors) Required(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		e.Add(field, RequiredMessage)
	}
	return value
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var registerOnce sync.Once

// RegisterValidations adds the custom tags used by form structs to gin's validator.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
}

// FromBinding converts a gin binding error into field errors keyed by the
// lower-cased struct field name.
func FromBinding(err error) Errors {
	out := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(NonField, "Некорректные данные формы.")
		return out
	}
	for _, fe := range verrs {
		out.Add(strings.ToLower(fe.Field()), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return RequiredMessage
	case "max":
		return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов.", fe.Param())
	case "min":
		return fmt.Sprintf("Убедитесь, что это значение содержит не менее %s символов.", fe.Param())
	case "slug":
		return "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса."
	case "eqfield":
		return "Введенные пароли не совпадают."
	default:
		return "Некорректное значение."
	}
}
