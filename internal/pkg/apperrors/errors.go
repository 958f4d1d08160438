package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Operation errors
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Student errors
var (
	ErrStudentNotFound      = NewResourceNotFoundError("Student not found")
	ErrStudentNameExists    = NewConflictError("A student with this name already exists")
	ErrYearLevelRequired    = NewValidationError("Year level is required for this enrollment type")
	ErrStudentCannotPromote = NewValidationError("Student is already in the final year level")
)

// Faculty errors
var (
	ErrFacultyNotFound   = NewResourceNotFoundError("Faculty not found")
	ErrFacultyNameExists = NewConflictError("A faculty member with this name already exists")
	ErrAdviserNotTeacher = NewValidationError("Adviser must be a Teaching department faculty member")
)

// Program and course errors
var (
	ErrProgramNotFound        = NewResourceNotFoundError("Program not found")
	ErrProgramAlreadyExists   = NewConflictError("A program with this ID or name already exists")
	ErrCourseNotFound         = NewResourceNotFoundError("Course not found")
	ErrCourseAlreadyExists    = NewConflictError("A course with this ID already exists")
	ErrCourseAlreadyScheduled = NewConflictError("Course is already assigned to a year level in this program")
)

// Section errors
var (
	ErrSectionNotFound    = NewResourceNotFoundError("Section not found")
	ErrAssignmentNotFound = NewResourceNotFoundError("Assignment not found")
	ErrSectionPlacement   = NewValidationError("Program and year level are required to assign a section")
)

// Admin and activity log errors
var (
	ErrAdminNotFound        = NewResourceNotFoundError("Admin not found")
	ErrSuperAdminProtected  = NewUnsupportedError("The Super Admin cannot be modified or removed")
	ErrSuperAdminRequired   = NewForbiddenError("This action requires Super Admin privileges")
	ErrAdminRequired        = NewForbiddenError("This action requires an administrator")
	ErrLogEntryNotFound     = NewResourceNotFoundError("Activity log entry not found")
	ErrLogEntryNotUndoable  = NewUnsupportedError("This action cannot be undone")
	ErrLogEntryStale        = NewConflictError("Affected records changed after this action; undo is no longer possible")
	ErrAnnouncementNotFound = NewResourceNotFoundError("Announcement not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewUnsupportedError creates a new custom error for operations that have no valid effect
func NewUnsupportedError(message string) error {
	return &CustomError{
		Err:     ErrUnsupportedOperation,
		Message: message,
	}
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
