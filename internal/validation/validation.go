// Package validation reports form errors per field, keyed by JSON name.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Errors maps form fields to user-facing messages.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns nil when no field failed.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Struct runs the validate tags of v and returns the failures.
func Struct(v interface{}) (Errors, error) {
	errs := Errors{}
	if err := validate.Struct(v); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validate: %w", err)
		}
		for _, fe := range verrs {
			errs[fieldPath(fe)] = message(fe)
		}
	}
	return errs, nil
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "OrderRequest.location.latitude"; drop the struct name.
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo requerido"
	case "oneof":
		return "Opción inválida"
	case "gte", "lte":
		return "Valor fuera de rango"
	case "min":
		return fmt.Sprintf("Mínimo %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("Máximo %s caracteres", fe.Param())
	case "email":
		return "Correo inválido"
	case "e164":
		return "Teléfono inválido"
	case "eqfield":
		return "Los valores no coinciden"
	}
	return "Valor inválido"
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

func IsValidEmail(email string) bool { return emailPattern.MatchString(email) }

// IsValidPhone accepts E.164 numbers such as +5215512345678.
func IsValidPhone(phone string) bool { return phonePattern.MatchString(phone) }
