package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartschool/school"
)

var (
	adminCtx = Context{Authenticated: true, Role: school.RoleAdmin, DisplayName: "Jose Admin"}
	tutorCtx = Context{Authenticated: true, Role: school.RoleTeacher, TeacherKind: school.KindTutor, DisplayName: "Juan Perez"}
)

func TestResolveDashboardNavigation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  NavTarget
	}{
		// "horario" must win over the greeting vocabulary and "clases" over
		// the attendance vocabulary: earlier rules take priority.
		{"schedule request", "necesito ver mi horario de clases", NavViewSchedules},
		{"course synonym", "¿qué cursos tengo hoy?", NavViewSchedules},
		{"own attendance before student list", "quiero ver mi asistencia", NavMyAttendance},
		{"student attendance", "voy a pasar lista", NavStudentAttendance},
		{"absences vocabulary", "registrar una falta", NavStudentAttendance},
		{"chat", "quiero enviar un mensaje", NavMessages},
		{"student bio before own profile", "ver el perfil escolar de un alumno", NavSchoolProfiles},
		{"own profile", "cambiar mi clave", NavProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(tt.input, tutorCtx)
			assert.Equal(t, tt.want, out.Navigate)
		})
	}
}

func TestResolveDashboardHelpAndGreeting(t *testing.T) {
	help := Resolve("ayuda", adminCtx)
	assert.NotEmpty(t, help.Choices)
	assert.Contains(t, help.Reply, "Gestión")

	greet := Resolve("hola", tutorCtx)
	assert.Contains(t, greet.Reply, "Juan Perez")
	assert.Equal(t, NavNone, greet.Navigate)
}

func TestResolveDashboardFallback(t *testing.T) {
	out := Resolve("xyzzy sin sentido", tutorCtx)

	assert.Equal(t, NavNone, out.Navigate)
	assert.False(t, out.OpenLogin)
	assert.NotEmpty(t, out.Choices, "the fallback always offers a way forward")
}

func TestResolvePublic(t *testing.T) {
	public := Context{}

	tests := []struct {
		name      string
		input     string
		openLogin bool
		navigate  NavTarget
	}{
		{"explicit login phrase", "quiero iniciar sesión", true, NavNone},
		{"location question", "¿Dónde queda el colegio?", false, NavContact},
		{"contact question", "dame el teléfono", false, NavContact},
		{"services question", "me interesan los talleres", false, NavServices},
		{"hours question", "¿a qué hora es la entrada?", false, NavNone},
		{"enrollment question", "costos de matrícula", false, NavNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(tt.input, public)
			assert.Equal(t, tt.openLogin, out.OpenLogin)
			assert.Equal(t, tt.navigate, out.Navigate)
			assert.NotEmpty(t, out.Reply)
		})
	}
}

func TestResolvePublicLoginVocabularyAsksFirst(t *testing.T) {
	// Generic login vocabulary offers the login instead of opening it.
	out := Resolve("necesito acceder a la plataforma", Context{})

	assert.False(t, out.OpenLogin)
	require.Len(t, out.Choices, 1)
	assert.Equal(t, ActionOpenLogin, out.Choices[0].Action)
}

func TestResolvePublicForgotPassword(t *testing.T) {
	// The accented input must still hit the pre-normalized keyword.
	out := Resolve("olvidé mi contraseña", Context{})

	assert.Contains(t, out.Reply, "secretaría")
}

func TestResolvePublicFallback(t *testing.T) {
	out := Resolve("qqqq", Context{})

	assert.Len(t, out.Choices, 3)
	assert.Equal(t, NavNone, out.Navigate)
}

func TestGreeting(t *testing.T) {
	public := Greeting(Context{})
	assert.Contains(t, public.Reply, "Robi")
	assert.Len(t, public.Choices, 5)

	admin := Greeting(adminCtx)
	assert.Contains(t, admin.Reply, "Administrador")
	assert.Len(t, admin.Choices, 5)

	teacher := Greeting(tutorCtx)
	assert.Contains(t, teacher.Reply, "Colega")
	assert.Len(t, teacher.Choices, 6)
}

func TestSessionContext(t *testing.T) {
	ctx := SessionContext(school.Session{
		Username:    "TutorJuan",
		DisplayName: "Juan Perez",
		Role:        school.RoleTeacher,
		TeacherKind: school.KindTutor,
	})

	assert.True(t, ctx.Authenticated)
	assert.Equal(t, school.RoleTeacher, ctx.Role)
	assert.Equal(t, school.KindTutor, ctx.TeacherKind)
	assert.False(t, ctx.isAdmin())
}
