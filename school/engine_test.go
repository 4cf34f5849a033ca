package school

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartschool/logger"
	"smartschool/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	e := NewEngine(store, logger.GetInstance())
	require.NoError(t, e.LoadOrSeed(context.Background()))
	return e, store
}

func TestRenameTeacherCascade(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	e.RenameTeacher(ctx, "Mario Gomez", "Mario Gomez Rojas")

	teacher, ok := e.TeacherByName("Mario Gomez Rojas")
	require.True(t, ok)
	assert.Equal(t, "Matemáticas", teacher.Specialty)

	_, ok = e.TeacherByName("Mario Gomez")
	assert.False(t, ok, "old name must be gone from the teacher collection")

	acc, ok := e.AccountByUsername("Mario")
	require.True(t, ok)
	assert.Equal(t, "Mario Gomez Rojas", acc.DisplayName)

	renamedItems := 0
	for _, item := range e.Schedules() {
		assert.NotEqual(t, "Mario Gomez", item.TeacherName)
		if item.TeacherName == "Mario Gomez Rojas" {
			renamedItems++
		}
	}
	assert.Equal(t, 2, renamedItems)

	records := e.TeacherAttendanceFor("Mario Gomez Rojas")
	require.Len(t, records, 1)
	assert.Equal(t, StatusOnTime, records[0].Status)
	assert.Empty(t, e.TeacherAttendanceFor("Mario Gomez"))

	var renamedMsg, untouchedMsg bool
	for _, m := range e.Messages() {
		if m.Sender == "Mario Gomez Rojas" {
			renamedMsg = true
		}
		if m.Sender == "Jose Admin" {
			untouchedMsg = true
		}
	}
	assert.True(t, renamedMsg)
	assert.True(t, untouchedMsg, "other senders must keep their names")

	// Unrelated teachers are untouched.
	_, ok = e.TeacherByName("Ana Torres")
	assert.True(t, ok)

	// The cascade is durable: a fresh engine on the same store sees it.
	e2 := NewEngine(store, logger.GetInstance())
	require.NoError(t, e2.LoadOrSeed(ctx))
	_, ok = e2.TeacherByName("Mario Gomez Rojas")
	assert.True(t, ok)
	acc2, ok := e2.AccountByUsername("Mario")
	require.True(t, ok)
	assert.Equal(t, "Mario Gomez Rojas", acc2.DisplayName)
}

func TestRenameTeacherNoOp(t *testing.T) {
	tests := []struct {
		name    string
		newName string
	}{
		{"empty name", ""},
		{"whitespace only", "   "},
		{"same name", "Mario Gomez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			before := e.Teachers()

			e.RenameTeacher(context.Background(), "Mario Gomez", tt.newName)

			assert.Equal(t, before, e.Teachers())
		})
	}
}

func TestUpdateProfileRenameCascades(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	acc, err := e.UpdateProfile(ctx, "Mario", ProfileUpdate{DisplayName: "Mario G. Rojas"})
	require.NoError(t, err)
	assert.Equal(t, "Mario G. Rojas", acc.DisplayName)

	for _, item := range e.Schedules() {
		assert.NotEqual(t, "Mario Gomez", item.TeacherName)
	}
	_, ok := e.TeacherByName("Mario G. Rojas")
	assert.True(t, ok)
}

func TestUpdateProfileUnknownAccount(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.UpdateProfile(context.Background(), "nobody", ProfileUpdate{Password: "x"})
	assert.Error(t, err)
}

func TestMarkStudentAttendanceAuthorization(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		sess    Session
		grade   string
		wantErr error
	}{
		{
			name:  "admin marks any grade",
			sess:  Session{Username: "Joseadmin", DisplayName: "Jose Admin", Role: RoleAdmin},
			grade: "3ro Grado",
		},
		{
			name:  "tutor marks assigned grade",
			sess:  Session{Username: "TutorJuan", DisplayName: "Juan Perez", Role: RoleTeacher, TeacherKind: KindTutor},
			grade: "3ro Grado",
		},
		{
			name:    "tutor denied for other grade",
			sess:    Session{Username: "TutorJuan", DisplayName: "Juan Perez", Role: RoleTeacher, TeacherKind: KindTutor},
			grade:   "6to Grado",
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "course teacher denied",
			sess:    Session{Username: "Mario", DisplayName: "Mario Gomez", Role: RoleTeacher, TeacherKind: KindCourse},
			grade:   "4to y 5to Grado",
			wantErr: ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			st, err := e.AddStudent(ctx, NewStudent{FullName: "Rosa Quispe", Grade: tt.grade})
			require.NoError(t, err)

			err = e.MarkStudentAttendance(ctx, tt.sess, st.ID, AttendancePresent)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				for _, s := range e.Students() {
					if s.ID == st.ID {
						assert.Equal(t, AttendanceNone, s.Attendance)
					}
				}
				return
			}

			require.NoError(t, err)
			marked := false
			for _, s := range e.Students() {
				if s.ID == st.ID {
					marked = s.Attendance == AttendancePresent
				}
			}
			assert.True(t, marked)
		})
	}
}

func TestUpsertTeacherAttendanceReplaces(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	e.UpsertTeacherAttendance(ctx, "Ana Torres", "2025-03-10", "08:20", "14:00", StatusLate)
	e.UpsertTeacherAttendance(ctx, "Ana Torres", "2025-03-10", "", "", StatusAbsent)

	records := e.TeacherAttendanceOn("2025-03-10")
	require.Len(t, records, 1)
	assert.Equal(t, StatusAbsent, records[0].Status)

	// A different date is a separate record.
	e.UpsertTeacherAttendance(ctx, "Ana Torres", "2025-03-11", "07:55", "14:00", StatusOnTime)
	assert.Len(t, e.TeacherAttendanceFor("Ana Torres"), 2)
}

func TestAddStudentValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	before := len(e.Students())

	_, err := e.AddStudent(context.Background(), NewStudent{FullName: "Sin Grado"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, e.Students(), before, "a rejected create must not mutate the collection")
}

func TestAddTeacherValidation(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.AddTeacher(context.Background(), NewTeacher{
		DisplayName:   "Elsa Ruiz",
		Specialty:     "Arte",
		AssignedGrade: "6to Grado",
		Kind:          "director",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddAccountTeacherKind(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	acc, err := e.AddAccount(ctx, NewAccount{
		Username:    "ProfElsa",
		Password:    "clave123",
		DisplayName: "Elsa Ruiz",
		Role:        RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, KindCourse, acc.TeacherKind, "teacher accounts default to course kind")

	admin, err := e.AddAccount(ctx, NewAccount{
		Username:    "admin2",
		Password:    "clave123",
		DisplayName: "Director",
		Role:        RoleAdmin,
		TeacherKind: KindTutor,
	})
	require.NoError(t, err)
	assert.Empty(t, admin.TeacherKind, "non-teacher accounts carry no teacher kind")
}

func TestAuthenticate(t *testing.T) {
	e, _ := newTestEngine(t)

	sess, err := e.Authenticate("TutorJuan", "tutor123")
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", sess.DisplayName)
	assert.Equal(t, RoleTeacher, sess.Role)
	assert.Equal(t, KindTutor, sess.TeacherKind)

	_, err = e.Authenticate("TutorJuan", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.Authenticate("ghost", "tutor123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSendChatMessage(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	restore := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC) }
	defer func() { nowFunc = restore }()

	msg, err := e.SendChatMessage(ctx, "Jose Admin", RoleAdmin, "Reunión a las 3pm")
	require.NoError(t, err)
	assert.Equal(t, "02:30 PM", msg.Timestamp)

	_, err = e.SendChatMessage(ctx, "Jose Admin", RoleAdmin, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAdminGatedDeletes(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	teacherSess := Session{Username: "Mario", Role: RoleTeacher}
	adminSess := Session{Username: "Joseadmin", Role: RoleAdmin}

	err := e.DeleteChatMessage(ctx, teacherSess, "1")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Len(t, e.Messages(), 2)

	require.NoError(t, e.DeleteChatMessage(ctx, adminSess, "1"))
	assert.Len(t, e.Messages(), 1)

	err = e.DeleteAccount(ctx, teacherSess, "4")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, e.DeleteAccount(ctx, adminSess, "4"))
	_, ok := e.AccountByUsername("Mario")
	assert.False(t, ok)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	e1 := NewEngine(store, logger.GetInstance())
	require.NoError(t, e1.LoadOrSeed(ctx))

	st, err := e1.AddStudent(ctx, NewStudent{FullName: "Rosa Quispe", Grade: "3ro Grado"})
	require.NoError(t, err)
	e1.DeleteScheduleItem(ctx, "3")

	e2 := NewEngine(store, logger.GetInstance())
	require.NoError(t, e2.LoadOrSeed(ctx))

	found := false
	for _, s := range e2.Students() {
		if s.ID == st.ID {
			found = true
		}
	}
	assert.True(t, found, "students snapshot must survive a restart")
	assert.Len(t, e2.Schedules(), 2)
}

// End-to-end: enroll staff and schedule through the engine, then rename the
// teacher and check every view reflects the new name.
func TestEnrollAndRenameScenario(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AddAccount(ctx, NewAccount{
		Username: "AnaL", Password: "clave123", DisplayName: "Ana Lopez",
		Role: RoleTeacher, TeacherKind: KindTutor,
	})
	require.NoError(t, err)

	_, err = e.AddTeacher(ctx, NewTeacher{
		DisplayName: "Ana Lopez", Specialty: "Tutoría",
		AssignedGrade: "3ro Grado", Kind: KindTutor,
	})
	require.NoError(t, err)

	_, err = e.AddScheduleItem(ctx, NewScheduleItem{
		Day: "Lunes", StartTime: "10:00", EndTime: "10:45",
		Subject: "Tutoría", Grade: "3ro Grado", TeacherName: "Ana Lopez",
	})
	require.NoError(t, err)

	e.RenameTeacher(ctx, "Ana Lopez", "Ana Lopez Garcia")

	acc, ok := e.AccountByUsername("AnaL")
	require.True(t, ok)
	assert.Equal(t, "Ana Lopez Garcia", acc.DisplayName)

	days := e.ScheduleForGrade("3ro Grado")
	require.Len(t, days, 1)
	require.Len(t, days[0].Items, 1)
	assert.Equal(t, "Ana Lopez Garcia", days[0].Items[0].TeacherName)

	// The renamed tutor can still mark attendance in their grade.
	st, err := e.AddStudent(ctx, NewStudent{FullName: "Pablo Soto", Grade: "3ro Grado"})
	require.NoError(t, err)

	sess := Session{Username: "AnaL", DisplayName: "Ana Lopez Garcia", Role: RoleTeacher, TeacherKind: KindTutor}
	require.NoError(t, e.MarkStudentAttendance(ctx, sess, st.ID, AttendanceLate))
}
