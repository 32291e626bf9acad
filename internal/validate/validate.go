// Package validate checks request payloads against struct-tag schemas.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// languageCode accepts codes such as "fr", "pt-BR", "zh-TW" and "es_MX".
var languageCode = regexp.MustCompile(`^[a-z]{2,3}([-_][A-Za-z0-9]{2,4})?$`)

// FieldError describes one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error is returned when a value does not satisfy its schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %s", f.Field, f.Rule))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator validates structs using their `validate` tags.
// Field names in errors use the json tag.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom rules registered. It panics if
// a rule cannot be registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	err := v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		return languageCode.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validate: register langcode: %v", err))
	}
	return &Validator{v: v}
}

// Struct validates s and returns an *Error listing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// LanguageCode validates a target language code.
func (v *Validator) LanguageCode(lang string) error {
	if err := v.v.Var(lang, "required,langcode"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &Error{Fields: []FieldError{{Field: "language", Rule: verrs[0].Tag()}}}
		}
		return err
	}
	return nil
}

// Schema maps each json field name of a struct to its validation rules.
// It is returned to clients alongside 400 responses.
func Schema(s any) map[string]string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	schema := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		rules := f.Tag.Get("validate")
		if rules == "" {
			rules = "optional"
		}
		schema[name] = rules
	}
	return schema
}

// Fields returns the set of json field names a struct accepts.
func Fields(s any) map[string]bool {
	fields := make(map[string]bool)
	for name := range Schema(s) {
		fields[name] = true
	}
	return fields
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
