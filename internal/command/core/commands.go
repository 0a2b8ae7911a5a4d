package core

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/pkg/cmd"
)

// HistorySize is how many entries /commands history shows.
const HistorySize = 15

// CommandsCommand switches command groups on and off per guild and shows
// what was used lately.
type CommandsCommand struct {
	bundle *i18n.Bundle
}

func (c *CommandsCommand) Name() string { return "commands" }
func (c *CommandsCommand) Description() string {
	return c.bundle.For(command.BaseLocale).T("slash.commands.description")
}
func (c *CommandsCommand) Group() string    { return Group }
func (c *CommandsCommand) Category() string { return SettingsCategory }
func (c *CommandsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}
func (c *CommandsCommand) BotPermissions() []int64 { return nil }

func (c *CommandsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	group := command.SlashOption(c.bundle, "slash.option.group", discordgo.ApplicationCommandOptionString, true)
	group.Autocomplete = true
	enabled := command.SlashOption(c.bundle, "slash.option.enabled", discordgo.ApplicationCommandOptionBoolean, true)

	return command.GuildCommand(c.bundle, "slash.commands", discordgo.PermissionManageGuild,
		command.SubCommand(c.bundle, "slash.commands.toggle", group, enabled),
		command.SubCommand(c.bundle, "slash.commands.history"))
}

func (c *CommandsCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	switch sc.Subcommand() {
	case "toggle":
		return c.toggle(ctx, sc)
	case "history":
		return c.history(ctx, sc)
	}
	return sc.Reply(sc.T("errors.not_implemented"))
}

func (c *CommandsCommand) toggle(ctx context.Context, sc *command.SlashInteractionContext) error {
	opts := sc.Options()
	group := strings.ToLower(strings.TrimSpace(opts.String("group")))
	enabled := opts.Bool("enabled")

	if !slices.Contains(Groups(sc.Registry), group) {
		return sc.Reply(sc.T("core.commands.unknown_group", group))
	}
	if group == Group {
		return sc.Reply(sc.T("core.commands.core_locked", group))
	}

	guildID := sc.Interaction.GuildID
	if enabled {
		if err := sc.Storage.EnableGroup(ctx, guildID, group); err != nil {
			return err
		}
	} else if err := sc.Storage.DisableGroup(ctx, guildID, group); err != nil {
		return err
	}
	sc.Logger.Info("Command group toggled",
		zap.String("guild", guildID), zap.String("group", group), zap.Bool("enabled", enabled))

	key := "core.commands.disabled"
	if enabled {
		key = "core.commands.enabled"
	}
	return sc.Reply(sc.T(key, group))
}

func (c *CommandsCommand) history(ctx context.Context, sc *command.SlashInteractionContext) error {
	guildID := sc.Interaction.GuildID
	entries, err := sc.Storage.CommandHistory(ctx, guildID, HistorySize)
	if err != nil {
		return err
	}
	disabled, err := sc.Storage.DisabledGroups(ctx, guildID)
	if err != nil {
		return err
	}
	if len(entries) == 0 && len(disabled) == 0 {
		return sc.Reply(sc.T("core.commands.history_empty"))
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, strings.TrimSpace(sc.T("core.commands.history_entry",
			e.CreatedAt.Unix(), e.Username, e.Command, e.Param)))
	}
	if len(lines) == 0 {
		lines = append(lines, sc.T("core.commands.history_empty"))
	}

	e := embed.NewEmbed().
		SetTitle(sc.T("core.commands.history_title")).
		SetDescription(strings.Join(lines, "\n")).
		SetColor(command.EmbedColor)
	if len(disabled) > 0 {
		e.SetFooter(sc.T("core.commands.disabled_list", strings.Join(disabled, ", ")))
	}
	return sc.ReplyEmbed(e.MessageEmbed)
}

// Autocomplete suggests the registered groups matching what was typed.
func (c *CommandsCommand) Autocomplete(_ context.Context, ac *command.AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	f := ac.Focused()
	if f == nil || f.Name != "group" {
		return nil, nil
	}
	typed := strings.ToLower(f.StringValue())
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, g := range Groups(ac.Registry) {
		if g == Group || !strings.Contains(g, typed) {
			continue
		}
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: g, Value: g})
	}
	return out, nil
}

// Groups returns the distinct groups of the commands in r, sorted.
func Groups(r *cmd.Registry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range r.GetAll() {
		meta, ok := command.Meta(c)
		if !ok || meta.Group() == "" || seen[meta.Group()] {
			continue
		}
		seen[meta.Group()] = true
		out = append(out, meta.Group())
	}
	sort.Strings(out)
	return out
}
