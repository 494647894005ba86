package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator used by all services. Field names in
// validation errors follow the json tag so complaints line up with the
// payload keys clients actually sent.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// asValidationError converts validator failures into the service-level
// ValidationError. Any other error is passed through unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string][]string)
	for _, e := range validationErrors {
		fields[e.Field()] = append(fields[e.Field()],
			fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return &ValidationError{Fields: fields}
}
