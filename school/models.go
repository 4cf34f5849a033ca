package school

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "docente"
)

// TeacherKind separates classroom tutors, who own a grade and take student
// attendance, from course teachers, who only read it.
type TeacherKind string

const (
	KindTutor  TeacherKind = "tutor"
	KindCourse TeacherKind = "course"
)

type AttendanceState string

const (
	AttendancePresent AttendanceState = "present"
	AttendanceAbsent  AttendanceState = "absent"
	AttendanceLate    AttendanceState = "late"
	AttendanceNone    AttendanceState = "none"
)

// DayStatus is the status of a teacher's working day. The values are the
// labels shown to staff and are stored as-is in snapshots.
type DayStatus string

const (
	StatusOnTime DayStatus = "Puntual"
	StatusLate   DayStatus = "Tarde"
	StatusAbsent DayStatus = "Falta"
)

type Account struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	DisplayName string      `json:"name"`
	Role        Role        `json:"role"`
	TeacherKind TeacherKind `json:"teacherType,omitempty"`
	PhotoURL    string      `json:"photoUrl,omitempty"`
}

type Student struct {
	ID           string          `json:"id"`
	FullName     string          `json:"name"`
	Grade        string          `json:"grade"`
	Attendance   AttendanceState `json:"attendance"`
	FatherName   string          `json:"fatherName,omitempty"`
	MotherName   string          `json:"motherName,omitempty"`
	DNI          string          `json:"dni,omitempty"`
	BirthDate    string          `json:"birthDate,omitempty"`
	OriginSchool string          `json:"originSchool,omitempty"`
}

// Teacher is the authoritative record for a staff member. DisplayName doubles
// as the reference key that schedule items, attendance records, chat messages
// and accounts denormalize, so renames must go through Engine.RenameTeacher.
type Teacher struct {
	ID            string      `json:"id"`
	DisplayName   string      `json:"name"`
	Specialty     string      `json:"specialty"`
	Email         string      `json:"email"`
	AssignedGrade string      `json:"assignedGrade"`
	Kind          TeacherKind `json:"teacherType"`
}

type ScheduleItem struct {
	ID          string `json:"id"`
	Day         string `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Subject     string `json:"subject"`
	Grade       string `json:"grade"`
	TeacherName string `json:"teacherName,omitempty"`
}

type TeacherAttendance struct {
	ID          string    `json:"id"`
	TeacherName string    `json:"teacherName"`
	Date        string    `json:"date"`
	EntryTime   string    `json:"entryTime"`
	ExitTime    string    `json:"exitTime"`
	Status      DayStatus `json:"status"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Session is the authenticated caller identity. It is produced by
// Engine.Authenticate and consumed as the authorization subject for
// role-gated mutations.
type Session struct {
	Username    string
	DisplayName string
	Role        Role
	TeacherKind TeacherKind
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Input shapes for validated inserts. Required fields mirror the dashboard
// forms: a create with a missing required field is rejected without mutating
// any collection.

type NewStudent struct {
	FullName     string `validate:"required"`
	Grade        string `validate:"required"`
	FatherName   string
	MotherName   string
	DNI          string
	BirthDate    string
	OriginSchool string
}

type NewTeacher struct {
	DisplayName   string      `validate:"required"`
	Specialty     string      `validate:"required"`
	Email         string      `validate:"omitempty,email"`
	AssignedGrade string      `validate:"required"`
	Kind          TeacherKind `validate:"required,oneof=tutor course"`
}

type NewAccount struct {
	Username    string      `validate:"required"`
	Password    string      `validate:"required"`
	DisplayName string      `validate:"required"`
	Role        Role        `validate:"required,oneof=admin docente"`
	TeacherKind TeacherKind `validate:"omitempty,oneof=tutor course"`
}

type NewScheduleItem struct {
	Day         string `validate:"required"`
	StartTime   string `validate:"required"`
	EndTime     string `validate:"required"`
	Subject     string `validate:"required"`
	Grade       string `validate:"required"`
	TeacherName string
}

// ProfileUpdate is a partial self-service update of the caller's account.
// Empty fields are left untouched.
type ProfileUpdate struct {
	DisplayName string
	Password    string
	PhotoURL    string
}
