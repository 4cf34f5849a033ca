package maxAPI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"smartschool/assistant"
	"smartschool/school"
)

const (
	loginPromptMsg    = "Escribe tu usuario y tu contraseña separados por un espacio.\nEjemplo: `Joseadmin 123456789`"
	loginFailedMsg    = "❌ Usuario o contraseña incorrectos. Inténtalo de nuevo:"
	loginWelcomeMsg   = "✅ Bienvenido, %s."
	logoutMsg         = "Sesión cerrada. ¡Hasta pronto!"
	chatPromptMsg     = "Escribe el mensaje para el Chat Global:"
	chatEmptyMsg      = "El mensaje no puede estar vacío. Escribe el texto a enviar:"
	chatSentMsg       = "📨 Mensaje enviado."
	renamePromptMsg   = "Escribe tu nuevo nombre mostrado:"
	renameDoneMsg     = "✅ Nombre actualizado a **%s**. El cambio se aplicó en horarios, asistencia y mensajes."
	permissionMsg     = "🚫 No tienes permisos para esta acción."
	sendStudentsCSV   = "Envía el archivo CSV con los alumnos a matricular."
	importDoneMsg     = "✅ %d alumnos matriculados."
	importErrMsg      = "❌ Error al importar:\n\n%s"
	unknownPayloadMsg = "❓ Acción desconocida."
)

func (b *Bot) handleBotStarted(ctx context.Context, u *schemes.BotStartedUpdate) {
	userID := u.User.UserId
	b.deliver(ctx, userID, assistant.Greeting(b.contextFor(userID)))
}

func (b *Bot) contextFor(userID int64) assistant.Context {
	if sess, ok := b.sessionFor(userID); ok {
		return assistant.SessionContext(sess)
	}
	return assistant.Context{}
}

func (b *Bot) handleMessageCreated(ctx context.Context, u *schemes.MessageCreatedUpdate) {
	userID := u.Message.Sender.UserId
	text := strings.TrimSpace(u.Message.Body.Text)
	attachments := u.Message.Body.Attachments

	if len(attachments) > 0 {
		b.handleAttachments(ctx, userID, attachments)
		return
	}
	if text == "" {
		return
	}

	switch b.pendingFor(userID) {
	case pendingLogin:
		b.handleLoginAttempt(ctx, userID, text)
	case pendingChatMessage:
		b.handleChatCompose(ctx, userID, text)
	case pendingRename:
		b.handleRename(ctx, userID, text)
	default:
		b.deliver(ctx, userID, assistant.Resolve(text, b.contextFor(userID)))
	}
}

func (b *Bot) handleLoginAttempt(ctx context.Context, userID int64, text string) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		b.sendMessage(ctx, userID, loginPromptMsg)
		return
	}

	sess, err := b.engine.Authenticate(fields[0], fields[1])
	if err != nil {
		b.logger.Warnf("login failed for user %d", userID)
		b.sendMessage(ctx, userID, loginFailedMsg)
		return
	}

	b.setSession(userID, sess)
	b.setPending(userID, pendingNone)
	b.logger.Infof("user %d logged in as %q (%s)", userID, sess.Username, sess.Role)

	b.sendMessage(ctx, userID, fmt.Sprintf(loginWelcomeMsg, sess.DisplayName))
	b.deliver(ctx, userID, assistant.Greeting(assistant.SessionContext(sess)))
}

func (b *Bot) handleChatCompose(ctx context.Context, userID int64, text string) {
	sess, ok := b.sessionFor(userID)
	if !ok {
		b.setPending(userID, pendingNone)
		return
	}

	if _, err := b.engine.SendChatMessage(ctx, sess.DisplayName, sess.Role, text); err != nil {
		if errors.Is(err, school.ErrEmptyMessage) {
			b.sendMessage(ctx, userID, chatEmptyMsg)
			return
		}
		b.logger.Errorf("failed to send chat message: %v", err)
		return
	}

	b.setPending(userID, pendingNone)
	b.sendMessage(ctx, userID, chatSentMsg)
	b.showSection(ctx, userID, assistant.NavMessages)
}

func (b *Bot) handleRename(ctx context.Context, userID int64, text string) {
	sess, ok := b.sessionFor(userID)
	if !ok {
		b.setPending(userID, pendingNone)
		return
	}

	acc, err := b.engine.UpdateProfile(ctx, sess.Username, school.ProfileUpdate{DisplayName: text})
	if err != nil {
		b.logger.Errorf("profile update failed for %q: %v", sess.Username, err)
		b.setPending(userID, pendingNone)
		return
	}

	sess.DisplayName = acc.DisplayName
	b.setSession(userID, sess)
	b.setPending(userID, pendingNone)

	b.sendMessage(ctx, userID, fmt.Sprintf(renameDoneMsg, acc.DisplayName))
	b.showSection(ctx, userID, assistant.NavProfile)
}

func (b *Bot) handleCallback(ctx context.Context, u *schemes.MessageCallbackUpdate) {
	userID := u.Callback.User.UserId
	callbackID := u.Callback.CallbackID
	payload := u.Callback.Payload

	b.logger.Debugf("Callback received: payload=%s, callbackID=%s, userID=%d", payload, callbackID, userID)

	switch {
	case payload == payloadStartLogin:
		b.beginLogin(ctx, userID)
	case payload == payloadLogout:
		b.clearSession(userID)
		b.setPending(userID, pendingNone)
		b.sendMessage(ctx, userID, logoutMsg)
		b.deliver(ctx, userID, assistant.Greeting(assistant.Context{}))
	case payload == payloadComposeChat:
		b.setPending(userID, pendingChatMessage)
		b.sendMessage(ctx, userID, chatPromptMsg)
	case payload == payloadRenameProfile:
		b.setPending(userID, pendingRename)
		b.sendMessage(ctx, userID, renamePromptMsg)
	case payload == payloadUploadStudents:
		b.beginStudentsUpload(ctx, userID)
	case strings.HasPrefix(payload, payloadMarkStudentPrefix):
		b.handleMarkStudent(ctx, userID, payload)
	case strings.HasPrefix(payload, payloadTeacherDayPrefix):
		b.handleTeacherDayStatus(ctx, userID, payload)
	case strings.HasPrefix(payload, payloadDeletePrefix):
		b.handleDelete(ctx, userID, payload)
	default:
		b.deliver(ctx, userID, assistant.ResolveAction(payload, b.contextFor(userID)))
	}
}

func (b *Bot) beginLogin(ctx context.Context, userID int64) {
	b.setPending(userID, pendingLogin)
	b.sendMessage(ctx, userID, loginPromptMsg)
}

// handleMarkStudent applies an attendance state from an inline button.
// Payload: att_<state>_<studentID>.
func (b *Bot) handleMarkStudent(ctx context.Context, userID int64, payload string) {
	sess, ok := b.sessionFor(userID)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(payload, payloadMarkStudentPrefix)
	state, studentID, found := strings.Cut(rest, "_")
	if !found {
		b.logger.Warnf("malformed attendance payload: %s", payload)
		return
	}

	err := b.engine.MarkStudentAttendance(ctx, sess, studentID, school.AttendanceState(state))
	if errors.Is(err, school.ErrPermissionDenied) {
		b.sendMessage(ctx, userID, permissionMsg)
		return
	}
	if err != nil {
		b.logger.Errorf("failed to mark attendance: %v", err)
		return
	}

	b.showSection(ctx, userID, assistant.NavStudentAttendance)
}

// handleTeacherDayStatus records today's working-day status for a teacher.
// Payload: tat_<status>_<teacherID>.
func (b *Bot) handleTeacherDayStatus(ctx context.Context, userID int64, payload string) {
	sess, ok := b.sessionFor(userID)
	if !ok || !sess.IsAdmin() {
		b.sendMessage(ctx, userID, permissionMsg)
		return
	}

	rest := strings.TrimPrefix(payload, payloadTeacherDayPrefix)
	statusCode, teacherID, found := strings.Cut(rest, "_")
	if !found {
		b.logger.Warnf("malformed teacher attendance payload: %s", payload)
		return
	}

	var teacherName string
	for _, t := range b.engine.Teachers() {
		if t.ID == teacherID {
			teacherName = t.DisplayName
			break
		}
	}
	if teacherName == "" {
		return
	}

	status, entry, exit := dayStatusDefaults(statusCode)
	b.engine.UpsertTeacherAttendance(ctx, teacherName, school.Today(), entry, exit, status)
	b.showSection(ctx, userID, assistant.NavAttendanceControl)
}

// dayStatusDefaults maps a payload status code to the stored status and the
// default entry/exit times the dashboard form pre-fills.
func dayStatusDefaults(code string) (school.DayStatus, string, string) {
	switch code {
	case "late":
		return school.StatusLate, "08:30", "14:00"
	case "absent":
		return school.StatusAbsent, "", ""
	default:
		return school.StatusOnTime, "08:00", "14:00"
	}
}

// handleDelete routes admin record deletion buttons.
// Payload: del_<kind>_<id>.
func (b *Bot) handleDelete(ctx context.Context, userID int64, payload string) {
	sess, ok := b.sessionFor(userID)
	if !ok || !sess.IsAdmin() {
		b.sendMessage(ctx, userID, permissionMsg)
		return
	}

	rest := strings.TrimPrefix(payload, payloadDeletePrefix)
	kind, id, found := strings.Cut(rest, "_")
	if !found {
		b.logger.Warnf("malformed delete payload: %s", payload)
		return
	}

	switch kind {
	case "stu":
		b.engine.DeleteStudent(ctx, id)
		b.showSection(ctx, userID, assistant.NavManageStudents)
	case "tea":
		b.engine.DeleteTeacher(ctx, id)
		b.showSection(ctx, userID, assistant.NavManageTeachers)
	case "acc":
		if err := b.engine.DeleteAccount(ctx, sess, id); err != nil {
			b.sendMessage(ctx, userID, permissionMsg)
			return
		}
		b.showSection(ctx, userID, assistant.NavManageAccounts)
	case "sch":
		b.engine.DeleteScheduleItem(ctx, id)
		b.showSection(ctx, userID, assistant.NavScheduleControl)
	case "msg":
		if err := b.engine.DeleteChatMessage(ctx, sess, id); err != nil {
			b.sendMessage(ctx, userID, permissionMsg)
			return
		}
		b.showSection(ctx, userID, assistant.NavMessages)
	default:
		b.sendMessage(ctx, userID, unknownPayloadMsg)
	}
}

// deliver sends an outcome: the reply with its choice keyboard, then the
// section render when the outcome navigates somewhere within the dashboard.
func (b *Bot) deliver(ctx context.Context, userID int64, out assistant.Outcome) {
	if len(out.Choices) > 0 {
		b.sendKeyboard(ctx, userID, out.Reply, b.choicesKeyboard(out.Choices))
	} else if out.Reply != "" {
		b.sendMessage(ctx, userID, out.Reply)
	}

	if out.OpenLogin {
		b.beginLogin(ctx, userID)
		return
	}

	if out.Navigate != assistant.NavNone {
		b.showSection(ctx, userID, out.Navigate)
	}
}
