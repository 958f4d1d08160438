// Package gateway exposes the admin API as a closed set of operations
// addressed by the legacy endpoint paths (students/read.php and friends).
package gateway

import "net/http"

// Operation is one API operation
type Operation int

const (
	OpLogin Operation = iota + 1

	OpStudentsRead
	OpStudentsCreate
	OpStudentsUpdate
	OpStudentsDelete
	OpStudentsPromote

	OpTeachersRead
	OpTeachersCreate
	OpTeachersUpdate
	OpTeachersDelete

	OpProgramsRead
	OpProgramsCreate
	OpProgramsUpdate
	OpProgramsDelete

	OpCoursesRead
	OpCoursesCreate
	OpCoursesUpdate
	OpCoursesDelete

	OpSectionsRead
	OpSectionsCreate
	OpSectionsUpdate
	OpSectionsDelete

	OpAssignmentsRead
	OpAssignmentsCreate
	OpAssignmentsDelete

	OpAdminsRead
	OpAdminsCreate
	OpAdminsDelete

	OpResetPassword
	OpActivityLogRead
	OpActivityLogUndo
	OpDashboardStats

	OpAnnouncementsRead
	OpAnnouncementsCreate
	OpAnnouncementsUpdate
	OpAnnouncementsDelete

	OpTeachableCoursesRead
	OpTeachableCoursesUpdate

	opCount
)

var operationNames = map[Operation]string{
	OpLogin:                  "auth.login",
	OpStudentsRead:           "students.read",
	OpStudentsCreate:         "students.create",
	OpStudentsUpdate:         "students.update",
	OpStudentsDelete:         "students.delete",
	OpStudentsPromote:        "students.promote",
	OpTeachersRead:           "teachers.read",
	OpTeachersCreate:         "teachers.create",
	OpTeachersUpdate:         "teachers.update",
	OpTeachersDelete:         "teachers.delete",
	OpProgramsRead:           "programs.read",
	OpProgramsCreate:         "programs.create",
	OpProgramsUpdate:         "programs.update",
	OpProgramsDelete:         "programs.delete",
	OpCoursesRead:            "courses.read",
	OpCoursesCreate:          "courses.create",
	OpCoursesUpdate:          "courses.update",
	OpCoursesDelete:          "courses.delete",
	OpSectionsRead:           "sections.read",
	OpSectionsCreate:         "sections.create",
	OpSectionsUpdate:         "sections.update",
	OpSectionsDelete:         "sections.delete",
	OpAssignmentsRead:        "assignments.read",
	OpAssignmentsCreate:      "assignments.create",
	OpAssignmentsDelete:      "assignments.delete",
	OpAdminsRead:             "admins.read",
	OpAdminsCreate:           "admins.create",
	OpAdminsDelete:           "admins.delete",
	OpResetPassword:          "admin.reset_password",
	OpActivityLogRead:        "activity_log.read",
	OpActivityLogUndo:        "activity_log.undo",
	OpDashboardStats:         "dashboard.stats",
	OpAnnouncementsRead:      "announcements.read",
	OpAnnouncementsCreate:    "announcements.create",
	OpAnnouncementsUpdate:    "announcements.update",
	OpAnnouncementsDelete:    "announcements.delete",
	OpTeachableCoursesRead:   "teachable_courses.read",
	OpTeachableCoursesUpdate: "teachable_courses.update",
}

// String returns the dotted name used in logs and metrics
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// Operations lists every operation in declaration order
func Operations() []Operation {
	ops := make([]Operation, 0, int(opCount)-1)
	for op := OpLogin; op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// Route binds a method and legacy path pattern to an operation.
// A {id} segment captures the entity id.
type Route struct {
	Method  string
	Pattern string
	Op      Operation
}

// Routes is the complete endpoint table
var Routes = []Route{
	{http.MethodPost, "auth/login.php", OpLogin},

	{http.MethodGet, "students/read.php", OpStudentsRead},
	{http.MethodPost, "students/create.php", OpStudentsCreate},
	{http.MethodPut, "students/update.php/{id}", OpStudentsUpdate},
	{http.MethodDelete, "students/delete.php/{id}", OpStudentsDelete},
	{http.MethodPost, "students/promote.php", OpStudentsPromote},

	{http.MethodGet, "teachers/read.php", OpTeachersRead},
	{http.MethodPost, "teachers/create.php", OpTeachersCreate},
	{http.MethodPut, "teachers/update.php/{id}", OpTeachersUpdate},
	{http.MethodDelete, "teachers/delete.php/{id}", OpTeachersDelete},

	{http.MethodGet, "programs/read.php", OpProgramsRead},
	{http.MethodPost, "programs/create.php", OpProgramsCreate},
	{http.MethodPut, "programs/update.php/{id}", OpProgramsUpdate},
	{http.MethodDelete, "programs/delete.php/{id}", OpProgramsDelete},

	{http.MethodGet, "courses/read.php", OpCoursesRead},
	{http.MethodPost, "courses/create.php", OpCoursesCreate},
	{http.MethodPut, "courses/update.php/{id}", OpCoursesUpdate},
	{http.MethodDelete, "courses/delete.php/{id}", OpCoursesDelete},

	{http.MethodGet, "sections/read.php", OpSectionsRead},
	{http.MethodPost, "sections/create.php", OpSectionsCreate},
	{http.MethodPut, "sections/update.php/{id}", OpSectionsUpdate},
	{http.MethodDelete, "sections/delete.php/{id}", OpSectionsDelete},

	{http.MethodGet, "sections/assignments/read.php", OpAssignmentsRead},
	{http.MethodPost, "sections/assignments/create.php", OpAssignmentsCreate},
	{http.MethodDelete, "assignments/delete.php/{id}", OpAssignmentsDelete},

	{http.MethodGet, "admins/read.php", OpAdminsRead},
	{http.MethodPost, "admins/create.php", OpAdminsCreate},
	{http.MethodDelete, "admins/delete.php/{id}", OpAdminsDelete},

	{http.MethodPost, "admin/reset_password.php", OpResetPassword},
	{http.MethodGet, "admin/activity-log/read.php", OpActivityLogRead},
	{http.MethodPost, "admin/activity-log/undo.php", OpActivityLogUndo},
	{http.MethodGet, "admin/dashboard-stats.php", OpDashboardStats},

	{http.MethodGet, "announcements/read.php", OpAnnouncementsRead},
	{http.MethodPost, "announcements/create.php", OpAnnouncementsCreate},
	{http.MethodPut, "announcements/update.php/{id}", OpAnnouncementsUpdate},
	{http.MethodDelete, "announcements/delete.php/{id}", OpAnnouncementsDelete},

	{http.MethodGet, "teacher/teachable-courses/read.php", OpTeachableCoursesRead},
	{http.MethodPut, "teacher/teachable-courses/update.php", OpTeachableCoursesUpdate},
	{http.MethodPost, "teacher/teachable-courses/update.php", OpTeachableCoursesUpdate},
}
