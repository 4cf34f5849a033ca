package application

import (
	"context"

	"smartschool/config"
	"smartschool/logger"
	"smartschool/maxAPI"
	"smartschool/school"
	"smartschool/storage"
)

type Application struct {
	Bot    *maxAPI.Bot
	Engine *school.Engine
	store  *storage.PostgresStore
	logger *logger.Logger
}

func NewApplication() *Application {
	return &Application{}
}

func (app *Application) Configure(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	app.logger = log

	store, err := storage.OpenPostgres(&cfg.Database)
	if err != nil {
		return err
	}
	app.store = store

	engine := school.NewEngine(store, log)
	if err := engine.LoadOrSeed(ctx); err != nil {
		_ = store.Close()
		return err
	}
	app.Engine = engine

	bot, err := maxAPI.NewBot(ctx, cfg, log, engine)
	if err != nil {
		_ = store.Close()
		return err
	}
	app.Bot = bot

	return nil
}

// Run starts the bot update loop and blocks until the context is cancelled.
func (app *Application) Run(ctx context.Context) {
	app.Bot.Start(ctx)
	<-ctx.Done()

	if app.store != nil {
		_ = app.store.Close()
	}
}
