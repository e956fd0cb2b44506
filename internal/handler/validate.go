package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator plugs go-playground/validator into echo.Context.Validate.
// Field names in errors are the json names.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// normalizer is implemented by request bodies that trim their fields
// before validation.
type normalizer interface {
	normalize()
}

var errBadBody = errors.New("invalid body")

// bind decodes the body into req, normalizes it and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errBadBody
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

// badRequest renders a bind error.  Validation failures list one message
// per offending field.
func badRequest(c echo.Context, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("at most %s characters", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of " + fe.Param()
	case "numeric":
		return "must be a number"
	}
	return "invalid value"
}
