package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

// Identifier patterns produced by the id generators
var CompiledPatterns = struct {
	StudentID       *regexp.Regexp
	TeacherID       *regexp.Regexp
	AccountUsername *regexp.Regexp
}{
	StudentID: regexp.MustCompile(`^2024\d{4}$`),
	TeacherID: regexp.MustCompile(`^7000\d{4}$`),
	// Usernames handed out to students (s), teachers (t) and administrative staff (a)
	AccountUsername: regexp.MustCompile(`(?i)^(s2024|[ta]7000)\d{4}$`),
}

// Custom tags
const (
	TagStudentID     = "studentid"
	TagTeacherID     = "teacherid"
	TagYearLevel     = "yearlevel"
	TagAdminUsername = "adminusername"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the payload the caller sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		TagStudentID: func(fl validator.FieldLevel) bool {
			return CompiledPatterns.StudentID.MatchString(fl.Field().String())
		},
		TagTeacherID: func(fl validator.FieldLevel) bool {
			return CompiledPatterns.TeacherID.MatchString(fl.Field().String())
		},
		TagYearLevel: func(fl validator.FieldLevel) bool {
			return models.YearLevel(fl.Field().String()).Valid()
		},
		// Explicit admins must not take a name the account generators may issue later
		TagAdminUsername: func(fl validator.FieldLevel) bool {
			return !CompiledPatterns.AccountUsername.MatchString(strings.TrimSpace(fl.Field().String()))
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// Var validates a single value against a tag list
func Var(field interface{}, tag string) bool {
	return validate.Var(field, tag) == nil
}

// Struct validates a request payload. Failures are returned as a validation
// error whose message names the first offending field and whose details list
// every field.
func Struct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = formatValidationError(fe)
	}
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, formatValidationError(fieldErrs[0])).
		WithDetails(details)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "alphanum":
		return e.Field() + " must contain only letters and digits"
	case TagStudentID:
		return e.Field() + " must be an 8 digit student id starting with 2024"
	case TagTeacherID:
		return e.Field() + " must be an 8 digit teacher id starting with 7000"
	case TagYearLevel:
		return e.Field() + " must be one of: 1st Year, 2nd Year, 3rd Year, 4th Year"
	case TagAdminUsername:
		return e.Field() + " is reserved for generated student and faculty accounts"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
