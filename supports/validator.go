package supports

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule. Field is the yaml name of the field when it
// has one, the Go field name otherwise. Path is the dotted location from the
// validated value, e.g. "tables[1].columns[0].name".
type FieldError struct {
	Field string
	Path  string
	Tag   string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", e.Path, e.Tag)
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(yamlFieldName)

	err := validate.RegisterValidation("notblank", fieldNotBlank)
	if err != nil {
		log.Panic(err)
	}
}

func fieldNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func yamlFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag == "" {
		return ""
	}

	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}

	return name
}

// Validate checks data against its validate tags and returns every failure
// in field order. It returns nil when data is valid.
func Validate(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: reflect.TypeOf(data).String(), Path: reflect.TypeOf(data).String(), Tag: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		fieldErrors = append(fieldErrors, FieldError{
			Field: fe.Field(),
			Path:  path,
			Tag:   fe.Tag(),
		})
	}
	return fieldErrors
}
