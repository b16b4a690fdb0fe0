package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var gamertagRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var v = func() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	_ = vd.RegisterValidation("gamertag", func(fl validator.FieldLevel) bool {
		return gamertagRe.MatchString(fl.Field().String())
	})
	return vd
}()

// Error carries field-level messages for a 400 response.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string { return "validation failed" }

// Struct validates a request body and converts validator errors into
// field-keyed messages.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldName(fe)
		fields[name] = message(name, fe)
	}
	return &Error{Fields: fields}
}

func fieldName(fe validator.FieldError) string {
	// json-style field names in messages
	return strings.ToLower(fe.Field())
}

func message(name string, fe validator.FieldError) string {
	label := strings.ToUpper(name[:1]) + name[1:]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind().String() == "string" {
			return label + " must be at least " + fe.Param() + " characters"
		}
		return label + " must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return label + " must be at most " + fe.Param() + " characters"
		}
		return label + " must be at most " + fe.Param()
	case "email":
		return label + " must be a valid email address"
	case "gamertag":
		return label + " may only contain letters, numbers, hyphens and underscores"
	case "oneof":
		return label + " must be one of " + fe.Param()
	case "gt", "gte":
		return label + " must be positive"
	default:
		return label + " is invalid"
	}
}
