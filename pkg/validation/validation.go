// Package validation validates request schemas once at the boundary and reports
// the first failure as a single human-readable Error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Error is a rejected input. Field is empty when the failure is not tied to one field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string) *Error {
	return &Error{Message: message}
}

func Newf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// As reports whether err is or wraps an *Error.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// UUIDShape matches the canonical 8-4-4-4-12 form with a version 1-5 nibble
// and an RFC 4122 variant.
var UUIDShape = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// MessageFunc maps a field failure to a message. Returning "" falls back to
// the translated default.
type MessageFunc func(validator.FieldError) string

// Validator wraps validator.Validate with JSON field names, English
// translations and the uuid_shape rule.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	locale := en.New()
	translator, _ := ut.New(locale, locale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{validate: validate, translator: translator}
	v.RegisterRule("uuid_shape", "{0} must be a valid UUID", func(fl validator.FieldLevel) bool {
		return UUIDShape.MatchString(fl.Field().String())
	})
	return v
}

// RegisterRule adds a custom tag with its default message. "{0}" in text is
// replaced with the field name.
func (v *Validator) RegisterRule(tag, text string, fn validator.Func) {
	_ = v.validate.RegisterValidation(tag, fn)
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Check validates value and returns the first field failure in declaration
// order as an *Error.
func (v *Validator) Check(value any, message MessageFunc) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	msg := ""
	if message != nil {
		msg = message(fe)
	}
	if msg == "" {
		msg = fe.Translate(v.translator)
	}
	return &Error{Field: fe.Field(), Message: msg}
}
