package maxAPI

import (
	"context"
	"sync"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"smartschool/config"
	"smartschool/logger"
	"smartschool/school"
)

// pendingInput marks what the next plain-text message from a chat means.
type pendingInput string

const (
	pendingNone         pendingInput = ""
	pendingLogin        pendingInput = "login"
	pendingChatMessage  pendingInput = "chat"
	pendingRename       pendingInput = "rename"
	pendingStudentsFile pendingInput = "students_csv"
)

// Bot is the messenger transport for the school engines. Free text goes
// through the intent classifier, keyboard callbacks carry action codes or
// record operations, and dashboard sections are rendered as formatted
// messages.
type Bot struct {
	MaxBot *schemes.BotInfo
	MaxAPI *maxbot.Api

	engine      *school.Engine
	logger      *logger.Logger
	chatHistory int

	mu       sync.Mutex
	sessions map[int64]school.Session
	pending  map[int64]pendingInput
}

func NewBot(ctx context.Context, cfg *config.Config, log *logger.Logger, engine *school.Engine) (*Bot, error) {
	api, err := maxbot.New(cfg.MaxAPI.Token)
	if err != nil && err.Error() != "" {
		log.Errorf("failed to create max api: %v", err)
		return nil, err
	}

	maxBot, err := api.Bots.GetBot(ctx)
	if err != nil && err.Error() != "" {
		log.Errorf("failed to get bot info: %v", err)
		return nil, err
	}

	return &Bot{
		MaxBot:      maxBot,
		MaxAPI:      api,
		engine:      engine,
		logger:      log,
		chatHistory: cfg.Chat.HistorySize,
		sessions:    make(map[int64]school.Session),
		pending:     make(map[int64]pendingInput),
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	go func() {
		for upd := range b.MaxAPI.GetUpdates(ctx) {
			b.logger.Debugf("Received update type: %T", upd)

			switch u := upd.(type) {
			case *schemes.BotStartedUpdate:
				b.handleBotStarted(ctx, u)
			case *schemes.MessageCreatedUpdate:
				b.handleMessageCreated(ctx, u)
			case *schemes.MessageCallbackUpdate:
				b.handleCallback(ctx, u)
			default:
				b.logger.Debugf("Unhandled update type: %T", upd)
			}
		}
	}()
}

func (b *Bot) sessionFor(userID int64) (school.Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[userID]
	return sess, ok
}

func (b *Bot) setSession(userID int64, sess school.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[userID] = sess
}

func (b *Bot) clearSession(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, userID)
}

func (b *Bot) pendingFor(userID int64) pendingInput {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[userID]
}

func (b *Bot) setPending(userID int64, p pendingInput) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p == pendingNone {
		delete(b.pending, userID)
		return
	}
	b.pending[userID] = p
}
