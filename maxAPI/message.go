package maxAPI

import (
	"context"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"smartschool/assistant"
)

// Callback payloads the bot owns. Everything else that arrives as a payload
// is treated as an assistant action code.
const (
	payloadStartLogin     = "OPEN_LOGIN_ACTION"
	payloadLogout         = "logout"
	payloadComposeChat    = "chat_compose"
	payloadRenameProfile  = "profile_rename"
	payloadUploadStudents = "uploadStudents"

	payloadMarkStudentPrefix = "att_"
	payloadTeacherDayPrefix  = "tat_"
	payloadDeletePrefix      = "del_"
)

func (b *Bot) sendMessage(ctx context.Context, userID int64, text string) {
	_, err := b.MaxAPI.Messages.Send(ctx, maxbot.NewMessage().
		SetUser(userID).
		SetText(text).
		SetFormat("markdown"))
	if err != nil && err.Error() != "" {
		b.logger.Errorf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendKeyboard(ctx context.Context, userID int64, msg string, keyboard *maxbot.Keyboard) {
	_, err := b.MaxAPI.Messages.Send(ctx, maxbot.NewMessage().
		SetUser(userID).
		AddKeyboard(keyboard).
		SetText(msg).
		SetFormat("markdown"))
	if err != nil && err.Error() != "" {
		b.logger.Errorf("Failed to send keyboard: %v", err)
	}
}

// choicesKeyboard renders assistant follow-up choices as one button per row.
func (b *Bot) choicesKeyboard(choices []assistant.Choice) *maxbot.Keyboard {
	keyboard := b.MaxAPI.Messages.NewKeyboardBuilder()
	for _, c := range choices {
		keyboard.AddRow().AddCallback(c.Label, schemes.DEFAULT, c.Action)
	}
	return keyboard
}
