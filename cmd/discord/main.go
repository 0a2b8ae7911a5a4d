// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/command/core"
	"github.com/akane-bot/akane/internal/command/discipline"
	"github.com/akane-bot/akane/internal/command/showcase"
	"github.com/akane-bot/akane/internal/command/support"
	"github.com/akane-bot/akane/internal/config"
	"github.com/akane-bot/akane/internal/discord"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/logger"
	"github.com/akane-bot/akane/internal/middleware"
	"github.com/akane-bot/akane/internal/scheduler"
	"github.com/akane-bot/akane/internal/storage"
	"github.com/akane-bot/akane/internal/tickets"
	v "github.com/akane-bot/akane/internal/version"
	"github.com/akane-bot/akane/pkg/cmd"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ERR] %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("[ERR] logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Bot stopped", zap.Error(err))
	}
	zl.Info("Discord bot exited cleanly")
}

func run(cfg *config.Config, zl *zap.Logger) error {
	zl.Info("Starting bot", zap.String("app", v.AppName), zap.String("version", v.AppVersion))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DatabaseURL, zl)
	if err != nil {
		return err
	}
	defer store.Close()

	bundle, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		return err
	}

	dg, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}
	api := discord.NewSessionMessenger(dg)

	engine := inquirer.New(api, inquirer.NewCollector(), zl.Named("inquirer"),
		inquirer.WithDefaultTimeout(cfg.PromptTimeout))
	wizard := tickets.NewWizard(engine, api, store, zl.Named("tickets"),
		tickets.WithRetryTimeout(cfg.DMRetryTimeout),
		tickets.WithAnswerTimeout(cfg.WizardAnswerTimeout))

	deps := &command.Deps{
		API:      api,
		Engine:   engine,
		Wizard:   wizard,
		Storage:  store,
		I18n:     bundle,
		Registry: cmd.NewRegistry(),
		Config:   cfg,
		Logger:   zl,
	}

	all := core.Commands(bundle)
	all = append(all, discipline.Commands(bundle)...)
	all = append(all, support.New(bundle))
	all = append(all, showcase.Commands(bundle)...)
	for _, c := range all {
		deps.Registry.MustRegister(command.Adapt(c, middleware.Standard()...))
	}
	zl.Info("Commands registered", zap.Int("count", deps.Registry.Len()))

	bot := discord.New(dg, api, deps, store)
	sched := scheduler.New(api, store, zl.Named("scheduler"))

	var wg conc.WaitGroup
	errCh := make(chan error, 2)
	wg.Go(func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
			stop()
		}
	})
	wg.Go(func() {
		if err := sched.Start(ctx, cfg.UnbanSchedule); err != nil {
			errCh <- err
			stop()
		}
	})
	wg.Wait()
	close(errCh)
	return <-errCh
}
