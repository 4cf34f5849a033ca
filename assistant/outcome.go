// Package assistant maps free-text utterances and button action codes to
// structured outcomes: a reply, follow-up choices and an optional navigation
// or login side effect. Classification is a priority-ordered decision list,
// not a statistical model; the first matching rule wins.
package assistant

import "smartschool/school"

// NavTarget identifies a dashboard section or a public page anchor. It is
// consumed by the transport's router; NavNone means "stay where you are".
type NavTarget string

const (
	NavNone NavTarget = ""

	// Dashboard sections.
	NavDashboard         NavTarget = "dashboard"
	NavViewSchedules     NavTarget = "view-schedules"
	NavMyAttendance      NavTarget = "my-attendance"
	NavStudentAttendance NavTarget = "student-attendance"
	NavSchoolProfiles    NavTarget = "school-profiles"
	NavMessages          NavTarget = "messages"
	NavProfile           NavTarget = "profile"
	NavManageStudents    NavTarget = "manage-students"
	NavManageTeachers    NavTarget = "manage-teachers"
	NavManageAccounts    NavTarget = "manage-accounts"
	NavAttendanceControl NavTarget = "attendance-control"
	NavScheduleControl   NavTarget = "schedule-control"

	// Public page anchors.
	NavHome     NavTarget = "inicio"
	NavAbout    NavTarget = "nosotros"
	NavServices NavTarget = "servicios"
	NavContact  NavTarget = "contacto"
)

// Button action codes. The values are opaque identifiers carried in keyboard
// payloads; a handful are Spanish labels for historical reasons and resolve
// through the text rules.
const (
	ActionAdminStudents  = "AdminStudents"
	ActionAdminTeachers  = "AdminTeachers"
	ActionAdminAccounts  = "AdminAccounts"
	ActionAdminSchedules = "AdminSchedules"
	ActionAdminAttend    = "AdminAttendance"

	ActionTeacherSchedules     = "TeacherSchedules"
	ActionTeacherMyAttendance  = "TeacherMyAttendance"
	ActionTeacherStudentAttend = "TeacherStudentAttendance"
	ActionTeacherProfiles      = "TeacherProfiles"
	ActionTeacherMessages      = "TeacherMessages"
	ActionTeacherProfile       = "TeacherProfile"

	ActionCloseHelp     = "CloseHelp"
	ActionDashboardHome = "DashboardHome"

	ActionLoginInfo   = "Inicio de Sesión"
	ActionOpenLogin   = "OPEN_LOGIN_ACTION"
	ActionAbout       = "Conócenos"
	ActionLocation    = "Ubicación"
	ActionServices    = "Servicios"
	ActionContact     = "Contactar"
	ActionRecoverPass = "Recuperar Clave"
	ActionHours       = "Horarios"
	ActionHome        = "Inicio"
	ActionIAmTeacher  = "Soy Docente"
	ActionIAmParent   = "Soy Padre"
	ActionIAmStudent  = "Soy Alumno"
)

// Choice is a follow-up button offered with a reply.
type Choice struct {
	Label  string
	Action string
}

// Outcome is the full result of resolving one input.
type Outcome struct {
	Reply     string
	Choices   []Choice
	Navigate  NavTarget
	OpenLogin bool
}

// Context is the session context classification depends on. The zero value
// is an anonymous public visitor.
type Context struct {
	Authenticated bool
	Role          school.Role
	TeacherKind   school.TeacherKind
	DisplayName   string
}

func (c Context) isAdmin() bool { return c.Authenticated && c.Role == school.RoleAdmin }
