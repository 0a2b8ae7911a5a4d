package command

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/config"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/storage"
	"github.com/akane-bot/akane/internal/tickets"
	"github.com/akane-bot/akane/pkg/cmd"
)

// API is the Discord REST surface commands use. discord.SessionMessenger
// implements it over a live session.
type API interface {
	tickets.API
	Guild(guildID string) (*discordgo.Guild, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	GuildMember(guildID, userID string) (*discordgo.Member, error)
	GuildBan(guildID, userID string) (*discordgo.GuildBan, error)
	GuildBanCreateWithReason(guildID, userID, reason string, days int) error
	GuildBanDelete(guildID, userID string) error
	GuildMemberDeleteWithReason(guildID, userID, reason string) error
	GuildMemberTimeout(guildID, userID string, until *time.Time) error
	BotUserID() string
	HeartbeatLatency() time.Duration
}

// Deps are the process-wide collaborators handed to every command context.
type Deps struct {
	API      API
	Engine   *inquirer.Engine
	Wizard   *tickets.Wizard
	Storage  *storage.Storage
	I18n     *i18n.Bundle
	Registry *cmd.Registry
	Config   *config.Config
	Logger   *zap.Logger
}

// Base is what every interaction context shares: the dependencies, the
// interaction being answered and a printer in the actor's locale.
type Base struct {
	*Deps
	Interaction *inquirer.Interaction
	Printer     *i18n.Printer
}

// NewBase wraps i for dispatch.
func NewBase(deps *Deps, i *discordgo.Interaction) Base {
	return Base{
		Deps:        deps,
		Interaction: inquirer.NewInteraction(i),
		Printer:     deps.I18n.ForInteraction(i),
	}
}

func (b *Base) Common() *Base { return b }

// T is shorthand for the actor's printer.
func (b *Base) T(key string, args ...any) string { return b.Printer.T(key, args...) }

// InteractionContext is implemented by every context the adapter passes in
// cmd.Invocation.Data.
type InteractionContext interface {
	Common() *Base
}

// FromInvocation extracts the interaction context of inv.
func FromInvocation(inv *cmd.Invocation) (*Base, bool) {
	if inv == nil {
		return nil, false
	}
	ic, ok := inv.Data.(InteractionContext)
	if !ok {
		return nil, false
	}
	return ic.Common(), true
}

// Discord-specific contexts (what the runtime passes when executing).

type SlashInteractionContext struct {
	Base
}

// Options indexes the command options, descending into the invoked
// subcommand when there is one.
func (c *SlashInteractionContext) Options() Options {
	return NewOptions(c.Interaction.ApplicationCommandData().Options)
}

// Subcommand is the name of the invoked subcommand, or "".
func (c *SlashInteractionContext) Subcommand() string {
	opts := c.Interaction.ApplicationCommandData().Options
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		return opts[0].Name
	}
	return ""
}

type ComponentInteractionContext struct {
	Base
}

type AutocompleteContext struct {
	Base
}

// Focused returns the option the user is typing into.
func (c *AutocompleteContext) Focused() *discordgo.ApplicationCommandInteractionDataOption {
	return focused(c.Interaction.ApplicationCommandData().Options)
}

func focused(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Focused {
			return o
		}
		if f := focused(o.Options); f != nil {
			return f
		}
	}
	return nil
}

// Providers: how a command is registered with Discord and which extra
// interactions it answers.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ComponentInteractionHandler interface {
	// ComponentPrefixes lists the custom id prefixes the command owns.
	ComponentPrefixes() []string
	Component(ctx context.Context, c *ComponentInteractionContext) error
}

type AutocompleteProvider interface {
	Autocomplete(ctx context.Context, c *AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error)
}

// DiscordMeta is exposed by the Discord adapter so middleware can read
// Group/Category/Permissions without depending on the concrete command type.
type DiscordMeta interface {
	Group() string
	Category() string
	UserPermissions() []int64
	BotPermissions() []int64
}

// DiscordCommand is what individual Discord commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	BotPermissions() []int64
	Run(ctx context.Context, c *SlashInteractionContext) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in
// the registry. It also implements SlashProvider, ComponentInteractionHandler,
// AutocompleteProvider and DiscordMeta by delegating to the inner command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Group() string            { return a.Cmd.Group() }
func (a *DiscordAdapter) Category() string         { return a.Cmd.Category() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }
func (a *DiscordAdapter) BotPermissions() []int64  { return a.Cmd.BotPermissions() }

// Run dispatches on the context type, so middleware wrapping the adapter
// sees slash and component invocations alike.
func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	switch v := inv.Data.(type) {
	case *SlashInteractionContext:
		return a.Cmd.Run(ctx, v)
	case *ComponentInteractionContext:
		if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
			return ch.Component(ctx, v)
		}
		return nil
	}
	return fmt.Errorf("command %s: unsupported context %T", a.Cmd.Name(), inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) ComponentPrefixes() []string {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.ComponentPrefixes()
	}
	return nil
}

func (a *DiscordAdapter) Component(ctx context.Context, c *ComponentInteractionContext) error {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.Component(ctx, c)
	}
	return nil
}

func (a *DiscordAdapter) Autocomplete(ctx context.Context, c *AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if ap, ok := a.Cmd.(AutocompleteProvider); ok {
		return ap.Autocomplete(ctx, c)
	}
	return nil, nil
}

// Register adapts discordCmd, applies middlewares and adds it to r.
func Register(r *cmd.Registry, discordCmd DiscordCommand, mws ...cmd.Middleware) error {
	return r.Register(Adapt(discordCmd, mws...))
}

// Adapt wraps discordCmd in its adapter and the middlewares, ready for a
// registry.
func Adapt(discordCmd DiscordCommand, mws ...cmd.Middleware) cmd.Command {
	return cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
}

// Meta returns the Discord metadata of a possibly wrapped command.
func Meta(c cmd.Command) (DiscordMeta, bool) {
	m, ok := cmd.Root(c).(DiscordMeta)
	return m, ok
}

// Definition returns the application command definition of c, or nil when
// it is not a slash command.
func Definition(c cmd.Command) *discordgo.ApplicationCommand {
	sp, ok := cmd.Root(c).(SlashProvider)
	if !ok {
		return nil
	}
	def := sp.SlashDefinition()
	if def != nil && def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}
