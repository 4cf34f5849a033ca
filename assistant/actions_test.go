package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActionCanned(t *testing.T) {
	tests := []struct {
		action string
		want   NavTarget
	}{
		{ActionAdminStudents, NavManageStudents},
		{ActionAdminTeachers, NavManageTeachers},
		{ActionAdminAccounts, NavManageAccounts},
		{ActionAdminSchedules, NavScheduleControl},
		{ActionAdminAttend, NavAttendanceControl},
		{ActionTeacherSchedules, NavViewSchedules},
		{ActionTeacherMyAttendance, NavMyAttendance},
		{ActionTeacherStudentAttend, NavStudentAttendance},
		{ActionTeacherProfiles, NavSchoolProfiles},
		{ActionTeacherMessages, NavMessages},
		{ActionTeacherProfile, NavProfile},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			out := ResolveAction(tt.action, adminCtx)
			assert.Equal(t, tt.want, out.Navigate)
			assert.Contains(t, out.Reply, "INSTRUCCIÓN")
			require.Len(t, out.Choices, 1)
			assert.Equal(t, ActionCloseHelp, out.Choices[0].Action)
		})
	}
}

func TestResolveActionOpenLogin(t *testing.T) {
	out := ResolveAction(ActionOpenLogin, Context{})

	assert.True(t, out.OpenLogin)
}

func TestResolveActionCloseHelp(t *testing.T) {
	out := ResolveAction(ActionCloseHelp, tutorCtx)

	assert.Equal(t, NavNone, out.Navigate)
	assert.Empty(t, out.Choices)
}

func TestResolveActionPublicCodes(t *testing.T) {
	about := ResolveAction(ActionAbout, Context{})
	assert.Equal(t, NavAbout, about.Navigate)

	location := ResolveAction(ActionLocation, Context{})
	assert.Equal(t, NavContact, location.Navigate)

	home := ResolveAction(ActionHome, Context{})
	assert.Equal(t, NavHome, home.Navigate)
}

// A payload that is not a canned code goes through text classification; if
// that lands on a section with a canned outcome, the canned one is returned,
// and the chain stops there.
func TestResolveActionChainsOnceIntoCanned(t *testing.T) {
	out := ResolveAction("quiero ver los horarios", tutorCtx)

	canned := ResolveAction(ActionTeacherSchedules, tutorCtx)
	assert.Equal(t, canned, out)
}

func TestResolveActionUnknownFallsToText(t *testing.T) {
	out := ResolveAction("zzzz", tutorCtx)

	assert.Equal(t, NavNone, out.Navigate)
	assert.NotEmpty(t, out.Reply)
}

// The Spanish label codes resolve through the public text rules.
func TestResolveActionLabelCodes(t *testing.T) {
	out := ResolveAction(ActionIAmTeacher, Context{})
	assert.Contains(t, out.Reply, "Colega")

	parent := ResolveAction(ActionIAmParent, Context{})
	assert.NotEmpty(t, parent.Choices)
}
