package models

import "fmt"

// YearLevel is the academic year a student is in
type YearLevel string

const (
	FirstYear  YearLevel = "1st Year"
	SecondYear YearLevel = "2nd Year"
	ThirdYear  YearLevel = "3rd Year"
	FourthYear YearLevel = "4th Year"
)

// YearLevels lists every year level in ascending order
var YearLevels = []YearLevel{FirstYear, SecondYear, ThirdYear, FourthYear}

// Number returns the 1-based position of the year level, or 0 if unknown
func (y YearLevel) Number() int {
	for i, level := range YearLevels {
		if level == y {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether y is one of the four known year levels
func (y YearLevel) Valid() bool {
	return y.Number() > 0
}

// Next returns the following year level; ok is false for the final year
func (y YearLevel) Next() (next YearLevel, ok bool) {
	n := y.Number()
	if n == 0 || n == len(YearLevels) {
		return "", false
	}
	return YearLevels[n], true
}

// EnrollmentType describes how a student entered the school
type EnrollmentType string

const (
	EnrollmentNew        EnrollmentType = "New"
	EnrollmentTransferee EnrollmentType = "Transferee"
	EnrollmentReturnee   EnrollmentType = "Returnee"
	EnrollmentContinuing EnrollmentType = "Continuing"
)

// Department is the faculty department
type Department string

const (
	DepartmentTeaching       Department = "Teaching"
	DepartmentAdministrative Department = "Administrative"
)

// EmploymentType is the faculty employment arrangement
type EmploymentType string

const (
	EmploymentRegular  EmploymentType = "Regular"
	EmploymentPartTime EmploymentType = "Part Time"
)

// CourseType distinguishes program-specific from shared courses
type CourseType string

const (
	CourseMajor CourseType = "Major"
	CourseMinor CourseType = "Minor"
)

// AdminRole is the role of an administrator account
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "Super Admin"
	RoleSubAdmin   AdminRole = "Sub Admin"
)

// TargetType is the kind of entity an activity log entry refers to
type TargetType string

const (
	TargetStudent      TargetType = "student"
	TargetFaculty      TargetType = "faculty"
	TargetAdmin        TargetType = "admin"
	TargetProgram      TargetType = "program"
	TargetCourse       TargetType = "course"
	TargetSection      TargetType = "section"
	TargetAnnouncement TargetType = "announcement"
	TargetSystem       TargetType = "system"
)

// ActionType is the closed set of actions recorded in the activity log
type ActionType string

const (
	ActionAddStudent             ActionType = "Add Student"
	ActionUpdateStudent          ActionType = "Update Student"
	ActionDeleteStudent          ActionType = "Delete Student"
	ActionPromoteStudents        ActionType = "Promote Students"
	ActionAddFaculty             ActionType = "Add Faculty"
	ActionUpdateFaculty          ActionType = "Update Faculty"
	ActionDeleteFaculty          ActionType = "Delete Faculty"
	ActionAddAdmin               ActionType = "Add Admin"
	ActionRemoveAdminRole        ActionType = "Remove Admin Role"
	ActionAddProgram             ActionType = "Add Program"
	ActionUpdateProgram          ActionType = "Update Program"
	ActionDeleteProgram          ActionType = "Delete Program"
	ActionAddCourse              ActionType = "Add Course"
	ActionUpdateCourse           ActionType = "Update Course"
	ActionDeleteCourse           ActionType = "Delete Course"
	ActionAddSection             ActionType = "Add Section"
	ActionUpdateSection          ActionType = "Update Section"
	ActionDeleteSection          ActionType = "Delete Section"
	ActionAssignSubject          ActionType = "Assign Subject Teacher"
	ActionUnassignSubject        ActionType = "Remove Subject Assignment"
	ActionCreateAnnouncement     ActionType = "Create Announcement"
	ActionUpdateAnnouncement     ActionType = "Update Announcement"
	ActionDeleteAnnouncement     ActionType = "Delete Announcement"
	ActionUpdateTeachableCourses ActionType = "Update Teachable Courses"
	ActionResetPassword          ActionType = "Reset Password"
)

// Undoable reports whether entries for this action may be reverted.
// Password resets are never restored to the previous credential.
func (a ActionType) Undoable() bool {
	return a != ActionResetPassword
}

// ParseYearLevel validates a raw year level string. Empty input yields "".
func ParseYearLevel(raw string) (YearLevel, error) {
	if raw == "" {
		return "", nil
	}
	y := YearLevel(raw)
	if !y.Valid() {
		return "", fmt.Errorf("unknown year level %q", raw)
	}
	return y, nil
}
