// Package discord connects the command registry and the prompt engine to a
// gateway session.
package discord

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/config"
)

// Bot owns the gateway session.
type Bot struct {
	dg        *discordgo.Session
	api       *SessionMessenger
	cfg       *config.Config
	deps      *command.Deps
	dispatch  *Dispatcher
	registrar *Registrar
	logger    *zap.Logger

	ctx   context.Context
	mu    sync.Mutex
	known map[string]bool
}

// NewSession creates an unopened session for token.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	return dg, nil
}

// New wires a bot over dg. deps.API should be the SessionMessenger of dg.
func New(dg *discordgo.Session, api *SessionMessenger, deps *command.Deps, store HashStore) *Bot {
	return &Bot{
		dg:        dg,
		api:       api,
		cfg:       deps.Config,
		deps:      deps,
		dispatch:  NewDispatcher(deps),
		registrar: NewRegistrar(api, store, deps.Logger),
		logger:    deps.Logger,
		known:     make(map[string]bool),
	}
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	b.logger.Info("Shutdown signal received, closing the gateway")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	var ids []string
	b.mu.Lock()
	for _, g := range r.Guilds {
		b.known[g.ID] = true
		if b.leaveIfBlacklisted(g.ID) {
			continue
		}
		ids = append(ids, g.ID)
	}
	b.mu.Unlock()

	b.logger.Info("Discord bot is running",
		zap.String("user", r.User.Username), zap.Int("guilds", len(ids)))
	go b.syncCommands(r.User.ID, ids...)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.mu.Lock()
	seen := b.known[g.ID]
	b.known[g.ID] = true
	b.mu.Unlock()
	if seen {
		return
	}

	b.logger.Info("Bot added to guild", zap.String("guild", g.ID), zap.String("name", g.Name))
	if b.leaveIfBlacklisted(g.ID) {
		return
	}
	go b.syncCommands(s.State.User.ID, g.ID)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID != "" && b.isGuildBlacklisted(i.GuildID) {
		return
	}
	// prompts block the command for minutes, keep the event loop free
	go b.dispatch.Interaction(b.ctx, i.Interaction)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.dispatch.Message(m.Message)
}

func (b *Bot) syncCommands(appID string, guildIDs ...string) {
	if !b.cfg.InitSlashCommands {
		b.logger.Info("Registering slash commands skipped")
		return
	}
	if b.cfg.Development {
		guildIDs = slices.DeleteFunc(guildIDs, func(id string) bool {
			return !slices.Contains(b.cfg.DevGuildIDs, id)
		})
	}
	if len(guildIDs) == 0 {
		return
	}
	if err := b.registrar.SyncAll(b.ctx, appID, guildIDs, Definitions(b.deps.Registry)); err != nil {
		b.logger.Error("Failed to register slash commands", zap.Error(err))
	}
}

// leaveIfBlacklisted reports whether guildID is blacklisted, leaving it.
func (b *Bot) leaveIfBlacklisted(guildID string) bool {
	if !b.isGuildBlacklisted(guildID) {
		return false
	}
	b.logger.Info("Leaving blacklisted guild", zap.String("guild", guildID))
	if err := b.api.GuildLeave(guildID); err != nil {
		b.logger.Error("Failed to leave guild", zap.String("guild", guildID), zap.Error(err))
	}
	return true
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}
