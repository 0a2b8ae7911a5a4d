// Package support exposes the ticket system: /tickets setup runs the setup
// wizard and the standing panels it posts open tickets.
package support

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/internal/tickets"
)

const (
	Group    = "tickets"
	Category = "🎫 Tickets"
)

type TicketsCommand struct {
	bundle *i18n.Bundle
}

func New(b *i18n.Bundle) *TicketsCommand { return &TicketsCommand{bundle: b} }

func (c *TicketsCommand) Name() string { return "tickets" }
func (c *TicketsCommand) Description() string {
	return c.bundle.For(command.BaseLocale).T("slash.tickets.description")
}
func (c *TicketsCommand) Group() string    { return Group }
func (c *TicketsCommand) Category() string { return Category }
func (c *TicketsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}
func (c *TicketsCommand) BotPermissions() []int64 {
	return []int64{
		discordgo.PermissionSendMessages,
		discordgo.PermissionCreatePrivateThreads,
		discordgo.PermissionSendMessagesInThreads,
	}
}

func (c *TicketsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	base := c.bundle.For(command.BaseLocale)

	channel := command.SlashOption(c.bundle, "slash.option.channel", discordgo.ApplicationCommandOptionChannel, true)
	channel.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}

	typ := command.SlashOption(c.bundle, "slash.option.type", discordgo.ApplicationCommandOptionString, true)
	for _, t := range tickets.Types {
		key := "tickets.wizard.type_" + string(t)
		typ.Choices = append(typ.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:              base.T(key),
			NameLocalizations: *c.bundle.Localizations(key),
			Value:             string(t),
		})
	}

	return command.GuildCommand(c.bundle, "slash.tickets", discordgo.PermissionManageGuild,
		command.SubCommand(c.bundle, "slash.tickets.setup", channel, typ))
}

func (c *TicketsCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	switch sc.Subcommand() {
	case "setup":
		return c.setup(ctx, sc)
	}
	return sc.Reply(sc.T("errors.not_implemented"))
}

func (c *TicketsCommand) setup(ctx context.Context, sc *command.SlashInteractionContext) error {
	opts := sc.Options()
	typ := tickets.Type(opts.String("type"))
	if !tickets.Supported(typ) {
		return sc.Reply(sc.T("tickets.wizard.only_threads"))
	}
	_, err := sc.Wizard.Configure(ctx, sc.Interaction, sc.Printer, opts.ChannelID("channel"), typ)
	return err
}

func (c *TicketsCommand) ComponentPrefixes() []string {
	return []string{tickets.PanelCustomID}
}

// Component answers selections on standing ticket panels.
func (c *TicketsCommand) Component(ctx context.Context, cc *command.ComponentInteractionContext) error {
	return cc.Wizard.Open(ctx, cc.Interaction, cc.Printer)
}
