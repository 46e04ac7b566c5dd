// Package validation checks request payloads against their `validate` tags
// and turns the first failure into a single client-facing message.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"taskmanager/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("maxbytes", maxBytes)
	_ = v.RegisterValidation("nonul", noNUL)
	return v
}

// maxBytes limits the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// noNUL rejects strings Postgres cannot store in a TEXT column.
func noNUL(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}

// Struct validates v and returns a domain validation error describing the
// first failing field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.Validation(Message(verrs[0]))
	}
	return domain.WrapError(domain.CodeInternal, "", err)
}

// Message renders a single field error.
func Message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%q length must be less than or equal to %s bytes long", field, fe.Param())
	case "nonul":
		return fmt.Sprintf("%q must not contain null characters", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return fmt.Sprintf("%q is invalid", field)
}

// DecodeError converts a JSON body decoding failure into a validation error.
func DecodeError(err error) error {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		domainErr *domain.Error
	)
	switch {
	case errors.As(err, &domainErr):
		return err
	case errors.As(err, &typeErr):
		return domain.Validation(TypeMessage(typeErr.Field, typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.Validation("Malformed JSON body")
	}
	if field, ok := unknownField(err); ok {
		return domain.Validation(fmt.Sprintf("%q is not allowed", field))
	}
	return domain.Validation(err.Error())
}

// TypeMessage reports that field should have the JSON type of t.
func TypeMessage(field string, t reflect.Type) string {
	if field == "" {
		field = "value"
	}
	return fmt.Sprintf("%q must be a %s", field, jsonType(t))
}

func jsonType(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return t.String()
}

func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
