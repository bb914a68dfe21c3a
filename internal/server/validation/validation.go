// Package validation evaluates declarative `validate:` constraints on input
// structs before any network or database call is made.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	slugRe  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// FieldError is one failed constraint.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// Error lists every failed constraint of a single input.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground validator with the marketplace rules.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with custom constraints registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal is validated through its string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "phone", validatePhone)
	mustRegister(v, "slug", validateSlug)
	mustRegister(v, "order_status", validateOrderStatus)
	mustRegister(v, "decimal_gte0", validateDecimalGTE0)
	mustRegister(v, "decimal_gt0", validateDecimalGT0)

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Validate checks s and returns *Error when any constraint fails.
func (v *Validator) Validate(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		out.Fields = append(out.Fields, FieldError{
			Field:      fe.Field(),
			Constraint: constraint,
			Message:    message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "phone":
		return "must be a phone number"
	case "slug":
		return "must contain only lowercase letters, digits and dashes"
	case "order_status":
		return "must be a known order status"
	case "decimal_gte0":
		return "must be a non-negative number"
	case "decimal_gt0":
		return "must be a positive number"
	default:
		return "is invalid"
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	s := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
	return phoneRe.MatchString(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugRe.MatchString(fl.Field().String())
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return models.IsOrderStatus(fl.Field().String())
}

func validateDecimalGTE0(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}
