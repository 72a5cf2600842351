package validator

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// FieldError names one field that failed a rule.
type FieldError struct {
	Field string
	Tag   string
}

// Struct validates s against its `validate` tags and reports the failing
// fields in declaration order. A nil result means s is valid.
func Struct(s any) []FieldError {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Tag: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// Failed reports whether field failed, optionally only for the given tags.
func Failed(errs []FieldError, field string, tags ...string) bool {
	for _, e := range errs {
		if e.Field != field {
			continue
		}
		if len(tags) == 0 {
			return true
		}
		for _, tag := range tags {
			if e.Tag == tag {
				return true
			}
		}
	}
	return false
}
