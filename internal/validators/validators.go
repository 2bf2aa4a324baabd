package validators

import (
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"storefront/pkg/apperror"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

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
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	return v
}

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword requires at least six characters on a single line, with an
// upper and lower case ASCII letter, a digit and a symbol.
func IsValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < minPasswordLength || strings.ContainsAny(s, "\r\n") {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Struct validates v against its `validate` tags. A missing required field
// wins over format problems so clients see MISSING_FIELD first.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Wrap(apperror.CodeInvalidFormat, err, "validation failed")
	}

	missing := map[string]string{}
	invalid := map[string]string{}
	var missingFields, invalidFields []string
	for _, fe := range errs {
		if isPresenceTag(fe.Tag()) {
			missing[fe.Field()] = "is required"
			missingFields = append(missingFields, fe.Field())
			continue
		}
		invalid[fe.Field()] = validationMessage(fe)
		invalidFields = append(invalidFields, fe.Field())
	}
	if len(missingFields) > 0 {
		return fieldError(apperror.CodeMissingField, "missing required field: ", missingFields, missing)
	}
	return fieldError(apperror.CodeInvalidFormat, "invalid value for: ", invalidFields, invalid)
}

func fieldError(code apperror.Code, prefix string, fields []string, details map[string]string) error {
	err := apperror.New(code, prefix+strings.Join(fields, ", "))
	for field, msg := range details {
		err.WithDetail(field, msg)
	}
	return err
}

func isPresenceTag(tag string) bool {
	return tag == "required" || strings.HasPrefix(tag, "required_")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "emailshape":
		return "must be a valid email address"
	case "strongpassword":
		return "must be at least 6 characters and contain upper and lower case letters, a digit and a symbol"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}
