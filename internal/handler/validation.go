package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Client input error codes.
const (
	CodeInvalidBody          = "INVALID_BODY"
	CodeMissingField         = "MISSING_FIELD"
	CodeInvalidEmail         = "INVALID_EMAIL"
	CodeInvalidPhone         = "INVALID_PHONE"
	CodeInvalidURL           = "INVALID_URL"
	CodeInvalidRole          = "INVALID_ROLE"
	CodeInvalidEmployeeCount = "INVALID_EMPLOYEE_COUNT"
	CodeInvalidCountry       = "INVALID_COUNTRY"
	CodeInvalidField         = "INVALID_FIELD"
	CodeInvalidOwner         = "INVALID_OWNER"
	CodeInvalidCursor        = "INVALID_CURSOR"
	CodeMissingQuery         = "MISSING_QUERY"
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// isoValidate checks upper-cased country codes against the stock alpha-2 rule.
var isoValidate = validator.New()

// validCountry accepts ISO 3166-1 alpha-2 codes in any letter case. The
// service layer stores them upper-cased.
func validCountry(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return isoValidate.Var(code, "iso3166_1_alpha2") == nil
}

// registerValidators makes validation errors report JSON (or form) field
// names instead of Go struct field names, and adds the country rule.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("country", validCountry)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// bindingError translates a gin binding error into an error code, a message
// and per-field details. The first failed field decides the code.
func bindingError(err error) (string, string, []FieldError) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return CodeInvalidBody, "request body is malformed: " + err.Error(), nil
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}

	first := verrs[0]
	return fieldCode(first), fieldMessage(first), details
}

func fieldCode(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return CodeMissingField
	case "email":
		return CodeInvalidEmail
	case "e164":
		return CodeInvalidPhone
	case "url":
		return CodeInvalidURL
	case "country":
		return CodeInvalidCountry
	}

	switch fe.Field() {
	case "role":
		return CodeInvalidRole
	case "employee_count":
		return CodeInvalidEmployeeCount
	}
	return CodeInvalidField
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "e164":
		return field + " must be an E.164 phone number, e.g. +14155552671"
	case "url":
		return field + " must be a valid URL"
	case "country":
		return field + " must be an ISO 3166-1 alpha-2 country code"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param() + " long"
	case "max":
		return field + " must be at most " + fe.Param()
	default:
		return field + " is invalid"
	}
}
