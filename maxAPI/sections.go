package maxAPI

import (
	"context"
	"fmt"
	"strings"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"smartschool/assistant"
	"smartschool/school"
)

const (
	needLoginMsg = "Esta sección requiere iniciar sesión."
	adminOnlyMsg = "Esta sección es solo para administradores."

	btnComposeChat    = "✍️ Escribir mensaje"
	btnRenameProfile  = "✏️ Cambiar nombre"
	btnLogout         = "🚪 Cerrar sesión"
	btnUploadCSV      = "📄 Importar CSV de alumnos"
	btnBackToPanel    = "🏠 Panel principal"
	btnDeleteShort    = "🗑 %s"
	btnMarkPresent    = "✅ %s"
	btnMarkLate       = "🕒 %s"
	btnMarkAbsent     = "❌ %s"
	btnTeacherOnTime  = "✅ Puntual: %s"
	btnTeacherLate    = "🕒 Tarde: %s"
	btnTeacherAbsent  = "❌ Falta: %s"

	aboutSectionMsg = "🏫 **Colegio SmartSchool**\n\nSomos una institución educativa privada comprometida con la formación integral de nuestros alumnos, con más de 20 años al servicio de la comunidad."
	servicesSectionMsg = "📚 **Nuestros Servicios**\n\n• Educación primaria y secundaria\n• Tutoría personalizada por grado\n• Talleres extracurriculares\n• Plataforma de comunicación para docentes y padres"
	contactSectionMsg  = "📍 **Contacto y Ubicación**\n\nAv. Los Próceres 1234, Lima\n📞 (01) 555-0123\n✉️ informes@smartschool.edu.pe\n\nHorario de atención: Lunes a Viernes, 8:00 - 16:00"
	homeSectionMsg     = "Bienvenido a SmartSchool. Pregúntame por nuestros servicios, horarios de atención o el proceso de matrícula."
)

// showSection renders a dashboard section (or a public page) as a formatted
// message plus its action keyboard. Dashboard sections require a session and
// the management sections additionally require the admin role.
func (b *Bot) showSection(ctx context.Context, userID int64, nav assistant.NavTarget) {
	switch nav {
	case assistant.NavHome:
		b.sendMessage(ctx, userID, homeSectionMsg)
		return
	case assistant.NavAbout:
		b.sendMessage(ctx, userID, aboutSectionMsg)
		return
	case assistant.NavServices:
		b.sendMessage(ctx, userID, servicesSectionMsg)
		return
	case assistant.NavContact:
		b.sendMessage(ctx, userID, contactSectionMsg)
		return
	}

	sess, ok := b.sessionFor(userID)
	if !ok {
		b.sendMessage(ctx, userID, needLoginMsg)
		b.beginLogin(ctx, userID)
		return
	}

	switch nav {
	case assistant.NavDashboard:
		b.deliver(ctx, userID, assistant.Greeting(assistant.SessionContext(sess)))
	case assistant.NavViewSchedules:
		b.showSchedules(ctx, userID)
	case assistant.NavMyAttendance:
		b.showMyAttendance(ctx, userID, sess)
	case assistant.NavStudentAttendance:
		b.showStudentAttendance(ctx, userID, sess)
	case assistant.NavSchoolProfiles:
		b.showSchoolProfiles(ctx, userID)
	case assistant.NavMessages:
		b.showMessages(ctx, userID, sess)
	case assistant.NavProfile:
		b.showProfile(ctx, userID, sess)
	case assistant.NavManageStudents:
		b.adminSection(ctx, userID, sess, b.showManageStudents)
	case assistant.NavManageTeachers:
		b.adminSection(ctx, userID, sess, b.showManageTeachers)
	case assistant.NavManageAccounts:
		b.adminSection(ctx, userID, sess, b.showManageAccounts)
	case assistant.NavAttendanceControl:
		b.adminSection(ctx, userID, sess, b.showAttendanceControl)
	case assistant.NavScheduleControl:
		b.adminSection(ctx, userID, sess, b.showScheduleControl)
	default:
		b.logger.Warnf("unknown section: %s", nav)
	}
}

func (b *Bot) adminSection(ctx context.Context, userID int64, sess school.Session, render func(context.Context, int64)) {
	if !sess.IsAdmin() {
		b.sendMessage(ctx, userID, adminOnlyMsg)
		return
	}
	render(ctx, userID)
}

func (b *Bot) homeKeyboard() *maxbot.Keyboard {
	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)
	return keyboard
}

// showSchedules prints every grade's weekly schedule grouped by weekday.
func (b *Bot) showSchedules(ctx context.Context, userID int64) {
	var sb strings.Builder
	sb.WriteString("📅 **Horarios de Clases**\n")

	for _, grade := range b.engine.Grades() {
		days := b.engine.ScheduleForGrade(grade)
		if len(days) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n**%s**\n", grade))
		for _, day := range days {
			sb.WriteString(fmt.Sprintf("_%s_\n", day.Day))
			for _, item := range day.Items {
				teacher := item.TeacherName
				if teacher == "" {
					teacher = "Sin asignar"
				}
				sb.WriteString(fmt.Sprintf("  %s - %s  %s (%s)\n", item.StartTime, item.EndTime, item.Subject, teacher))
			}
		}
	}

	b.sendKeyboard(ctx, userID, sb.String(), b.homeKeyboard())
}

func (b *Bot) showMyAttendance(ctx context.Context, userID int64, sess school.Session) {
	records := b.engine.TeacherAttendanceFor(sess.DisplayName)

	var sb strings.Builder
	sb.WriteString("🕐 **Mi Asistencia**\n\n")
	if len(records) == 0 {
		sb.WriteString("Aún no tienes registros de asistencia.")
	}
	for _, r := range records {
		entry := r.EntryTime
		if entry == "" {
			entry = "--:--"
		}
		exit := r.ExitTime
		if exit == "" {
			exit = "--:--"
		}
		sb.WriteString(fmt.Sprintf("%s  %s → %s  **%s**\n", r.Date, entry, exit, r.Status))
	}

	b.sendKeyboard(ctx, userID, sb.String(), b.homeKeyboard())
}

// showStudentAttendance lists students with per-student marking buttons.
// Tutors see only their assigned grade; admins see every grade. Course
// teachers get the read-only list without buttons.
func (b *Bot) showStudentAttendance(ctx context.Context, userID int64, sess school.Session) {
	var students []school.Student
	canMark := false

	switch {
	case sess.IsAdmin():
		students = b.engine.Students()
		canMark = true
	case sess.TeacherKind == school.KindTutor:
		if t, ok := b.engine.TeacherByName(sess.DisplayName); ok {
			students = b.engine.StudentsInGrade(t.AssignedGrade)
			canMark = true
		}
	default:
		students = b.engine.Students()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 **Asistencia de Alumnos** (%s)\n\n", school.FormatGradeCount(len(students))))
	for _, s := range students {
		sb.WriteString(fmt.Sprintf("%s — %s — %s\n", s.FullName, s.Grade, attendanceLabel(s.Attendance)))
	}
	if canMark {
		sb.WriteString("\nMarca la asistencia con los botones:")
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	if canMark {
		for _, s := range students {
			keyboard.AddRow().
				AddCallback(fmt.Sprintf(btnMarkPresent, s.FullName), schemes.POSITIVE, payloadMarkStudentPrefix+"present_"+s.ID).
				AddCallback(fmt.Sprintf(btnMarkLate, s.FullName), schemes.DEFAULT, payloadMarkStudentPrefix+"late_"+s.ID).
				AddCallback(fmt.Sprintf(btnMarkAbsent, s.FullName), schemes.NEGATIVE, payloadMarkStudentPrefix+"absent_"+s.ID)
		}
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}

func attendanceLabel(state school.AttendanceState) string {
	switch state {
	case school.AttendancePresent:
		return "✅ Presente"
	case school.AttendanceLate:
		return "🕒 Tardanza"
	case school.AttendanceAbsent:
		return "❌ Falta"
	default:
		return "– Sin marcar"
	}
}

func (b *Bot) showSchoolProfiles(ctx context.Context, userID int64) {
	students := b.engine.Students()

	var sb strings.Builder
	sb.WriteString("👤 **Perfiles Escolares**\n")
	for _, s := range students {
		sb.WriteString(fmt.Sprintf("\n**%s** — %s\n", s.FullName, s.Grade))
		if s.DNI != "" {
			sb.WriteString(fmt.Sprintf("DNI: %s\n", s.DNI))
		}
		if s.BirthDate != "" {
			sb.WriteString(fmt.Sprintf("Nacimiento: %s\n", s.BirthDate))
		}
		if s.FatherName != "" {
			sb.WriteString(fmt.Sprintf("Padre: %s\n", s.FatherName))
		}
		if s.MotherName != "" {
			sb.WriteString(fmt.Sprintf("Madre: %s\n", s.MotherName))
		}
		if s.OriginSchool != "" {
			sb.WriteString(fmt.Sprintf("Colegio de origen: %s\n", s.OriginSchool))
		}
	}

	b.sendKeyboard(ctx, userID, sb.String(), b.homeKeyboard())
}

// showMessages renders the tail of the global chat and marks it read for the
// viewer. Admins get a delete button per shown message.
func (b *Bot) showMessages(ctx context.Context, userID int64, sess school.Session) {
	unread := b.engine.UnreadCount(ctx, sess.Username)
	messages := b.engine.Messages()

	tail := messages
	if b.chatHistory > 0 && len(tail) > b.chatHistory {
		tail = tail[len(tail)-b.chatHistory:]
	}

	var sb strings.Builder
	sb.WriteString("💬 **Chat Global**")
	if unread > 0 {
		sb.WriteString(fmt.Sprintf(" (%d sin leer)", unread))
	}
	sb.WriteString("\n\n")
	if len(tail) == 0 {
		sb.WriteString("No hay mensajes todavía.")
	}
	for _, m := range tail {
		sb.WriteString(fmt.Sprintf("**%s** _%s_\n%s\n\n", m.Sender, m.Timestamp, m.Content))
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	keyboard.AddRow().AddCallback(btnComposeChat, schemes.POSITIVE, payloadComposeChat)
	if sess.IsAdmin() {
		for _, m := range tail {
			label := m.Content
			if r := []rune(label); len(r) > 20 {
				label = string(r[:20]) + "…"
			}
			keyboard.AddRow().AddCallback(fmt.Sprintf(btnDeleteShort, label), schemes.NEGATIVE, payloadDeletePrefix+"msg_"+m.ID)
		}
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
	b.engine.MarkChatRead(ctx, sess.Username)
}

func (b *Bot) showProfile(ctx context.Context, userID int64, sess school.Session) {
	acc, ok := b.engine.AccountByUsername(sess.Username)
	if !ok {
		b.sendMessage(ctx, userID, needLoginMsg)
		return
	}

	var sb strings.Builder
	sb.WriteString("⚙️ **Mi Perfil**\n\n")
	sb.WriteString(fmt.Sprintf("Nombre: %s\n", acc.DisplayName))
	sb.WriteString(fmt.Sprintf("Usuario: %s\n", acc.Username))
	sb.WriteString(fmt.Sprintf("Rol: %s\n", acc.Role))
	if acc.Role == school.RoleTeacher {
		sb.WriteString(fmt.Sprintf("Tipo: %s\n", acc.TeacherKind))
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	keyboard.AddRow().AddCallback(btnRenameProfile, schemes.DEFAULT, payloadRenameProfile)
	keyboard.AddRow().AddCallback(btnLogout, schemes.NEGATIVE, payloadLogout)
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}

func (b *Bot) showManageStudents(ctx context.Context, userID int64) {
	students := b.engine.Students()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎓 **Gestión de Alumnos** (%s)\n\n", school.FormatGradeCount(len(students))))
	for _, s := range students {
		sb.WriteString(fmt.Sprintf("%s — %s\n", s.FullName, s.Grade))
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	keyboard.AddRow().AddCallback(btnUploadCSV, schemes.POSITIVE, payloadUploadStudents)
	for _, s := range students {
		keyboard.AddRow().AddCallback(fmt.Sprintf(btnDeleteShort, s.FullName), schemes.NEGATIVE, payloadDeletePrefix+"stu_"+s.ID)
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}

func (b *Bot) showManageTeachers(ctx context.Context, userID int64) {
	teachers := b.engine.Teachers()

	var sb strings.Builder
	sb.WriteString("👩‍🏫 **Gestión de Docentes**\n\n")
	for _, t := range teachers {
		sb.WriteString(fmt.Sprintf("%s — %s", t.DisplayName, t.Specialty))
		if t.Kind == school.KindTutor {
			sb.WriteString(fmt.Sprintf(" (tutor de %s)", t.AssignedGrade))
		}
		sb.WriteString("\n")
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	for _, t := range teachers {
		keyboard.AddRow().AddCallback(fmt.Sprintf(btnDeleteShort, t.DisplayName), schemes.NEGATIVE, payloadDeletePrefix+"tea_"+t.ID)
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}

func (b *Bot) showManageAccounts(ctx context.Context, userID int64) {
	accounts := b.engine.Accounts()

	var sb strings.Builder
	sb.WriteString("🔐 **Gestión de Cuentas**\n\n")
	for _, a := range accounts {
		sb.WriteString(fmt.Sprintf("%s (@%s) — %s", a.DisplayName, a.Username, a.Role))
		if a.Role == school.RoleTeacher {
			sb.WriteString(fmt.Sprintf(" / %s", a.TeacherKind))
		}
		sb.WriteString("\n")
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	for _, a := range accounts {
		keyboard.AddRow().AddCallback(fmt.Sprintf(btnDeleteShort, a.Username), schemes.NEGATIVE, payloadDeletePrefix+"acc_"+a.ID)
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}

// showAttendanceControl lists today's teacher attendance and offers a status
// button set per teacher.
func (b *Bot) showAttendanceControl(ctx context.Context, userID int64) {
	today := school.Today()
	records := b.engine.TeacherAttendanceOn(today)
	teachers := b.engine.Teachers()

	statusByName := make(map[string]school.DayStatus, len(records))
	for _, r := range records {
		statusByName[r.TeacherName] = r.Status
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🕐 **Control de Asistencia Docente** — %s\n\n", today))
	for _, t := range teachers {
		status, ok := statusByName[t.DisplayName]
		if !ok {
			sb.WriteString(fmt.Sprintf("%s — sin registrar\n", t.DisplayName))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s — **%s**\n", t.DisplayName, status))
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	for _, t := range teachers {
		keyboard.AddRow().
			AddCallback(fmt.Sprintf(btnTeacherOnTime, t.DisplayName), schemes.POSITIVE, payloadTeacherDayPrefix+"ontime_"+t.ID).
			AddCallback(fmt.Sprintf(btnTeacherLate, t.DisplayName), schemes.DEFAULT, payloadTeacherDayPrefix+"late_"+t.ID).
			AddCallback(fmt.Sprintf(btnTeacherAbsent, t.DisplayName), schemes.NEGATIVE, payloadTeacherDayPrefix+"absent_"+t.ID)
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}

func (b *Bot) showScheduleControl(ctx context.Context, userID int64) {
	items := b.engine.Schedules()

	var sb strings.Builder
	sb.WriteString("📅 **Control de Horarios**\n\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("%s %s-%s  %s — %s (%s)\n",
			item.Day, item.StartTime, item.EndTime, item.Subject, item.Grade, item.TeacherName))
	}

	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	for _, item := range items {
		label := fmt.Sprintf("%s %s %s", item.Day, item.StartTime, item.Subject)
		keyboard.AddRow().AddCallback(fmt.Sprintf(btnDeleteShort, label), schemes.NEGATIVE, payloadDeletePrefix+"sch_"+item.ID)
	}
	keyboard.AddRow().AddCallback(btnBackToPanel, schemes.DEFAULT, assistant.ActionDashboardHome)

	b.sendKeyboard(ctx, userID, sb.String(), keyboard)
}
