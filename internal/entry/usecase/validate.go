package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/fekuna/fridge-inventory/internal/entry"
	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/go-playground/validator/v10"
)

var violationMessages = map[string]string{
	"required": "is required",
	"gt":       "must be greater than zero",
	"unit":     "must be one of buc, g, kg, ml, l",
	"datetime": "must be a date in YYYY-MM-DD format",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registering a fixed tag on a fresh instance cannot fail.
	_ = v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return model.Unit(fl.Field().String()).Valid()
	})
	return v
}

// checkForm trims the free-text fields in place, then validates.
func checkForm(v *validator.Validate, form *dto.Form) error {
	form.Name = strings.TrimSpace(form.Name)
	form.ExpiryDate = strings.TrimSpace(form.ExpiryDate)

	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	violations := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := violationMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		violations[fe.Field()] = msg
	}
	return &entry.ValidationError{Violations: violations}
}
