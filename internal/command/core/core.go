// Package core holds the commands every guild keeps: ping, help and the
// group switches.
package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/config"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/internal/middleware"
	"github.com/akane-bot/akane/internal/version"
	"github.com/akane-bot/akane/pkg/cmd"
)

const (
	Group = middleware.CoreGroup

	InfoCategory     = "🕯️ Information"
	SettingsCategory = "⚙️ Settings"
)

// Commands returns the core commands, defined against b.
func Commands(b *i18n.Bundle) []command.DiscordCommand {
	return []command.DiscordCommand{
		&PingCommand{bundle: b},
		&HelpCommand{bundle: b},
		&CommandsCommand{bundle: b},
	}
}

type PingCommand struct {
	bundle *i18n.Bundle
}

func (c *PingCommand) Name() string { return "ping" }
func (c *PingCommand) Description() string {
	return c.bundle.For(command.BaseLocale).T("slash.ping.description")
}
func (c *PingCommand) Group() string            { return Group }
func (c *PingCommand) Category() string         { return InfoCategory }
func (c *PingCommand) UserPermissions() []int64 { return nil }
func (c *PingCommand) BotPermissions() []int64  { return nil }
func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.SlashCommand(c.bundle, "slash.ping")
}

func (c *PingCommand) Run(_ context.Context, sc *command.SlashInteractionContext) error {
	return sc.Reply(sc.T("core.ping.pong", sc.API.HeartbeatLatency().Round(time.Millisecond)))
}

type HelpCommand struct {
	bundle *i18n.Bundle
}

func (c *HelpCommand) Name() string { return "help" }
func (c *HelpCommand) Description() string {
	return c.bundle.For(command.BaseLocale).T("slash.help.description")
}
func (c *HelpCommand) Group() string            { return Group }
func (c *HelpCommand) Category() string         { return InfoCategory }
func (c *HelpCommand) UserPermissions() []int64 { return nil }
func (c *HelpCommand) BotPermissions() []int64  { return nil }
func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.SlashCommand(c.bundle, "slash.help")
}

func (c *HelpCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	var disabled []string
	if sc.Interaction.InGuild() {
		var err error
		if disabled, err = sc.Storage.DisabledGroups(ctx, sc.Interaction.GuildID); err != nil {
			return err
		}
	}
	locale := discordgo.Locale(sc.Printer.Tag().String())
	return sc.ReplyEmbed(Help(sc.Printer, locale, sc.Registry.GetAll(), disabled))
}

type helpLine struct {
	name, description string
}

// Help lists cmds by category, heaviest categories last, skipping the
// groups in disabled. Descriptions use locale when the definition carries
// a translation for it.
func Help(tr *i18n.Printer, locale discordgo.Locale, cmds []cmd.Command, disabled []string) *discordgo.MessageEmbed {
	off := make(map[string]bool, len(disabled))
	for _, g := range disabled {
		off[g] = true
	}

	byCategory := make(map[string][]helpLine)
	for _, c := range cmds {
		meta, ok := command.Meta(c)
		if !ok || off[meta.Group()] {
			continue
		}
		def := command.Definition(c)
		if def == nil {
			continue
		}
		line := helpLine{name: def.Name, description: def.Description}
		if def.NameLocalizations != nil {
			if n, ok := (*def.NameLocalizations)[locale]; ok && n != "" {
				line.name = n
			}
		}
		if def.DescriptionLocalizations != nil {
			if d, ok := (*def.DescriptionLocalizations)[locale]; ok && d != "" {
				line.description = d
			}
		}
		byCategory[meta.Category()] = append(byCategory[meta.Category()], line)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		wi, wj := config.CategoryWeights[categories[i]], config.CategoryWeights[categories[j]]
		if wi != wj {
			return wi < wj
		}
		return categories[i] < categories[j]
	})

	e := embed.NewEmbed().
		SetTitle(tr.T("core.help.title", version.AppName)).
		SetDescription(tr.T("core.help.description")).
		SetColor(command.EmbedColor).
		SetFooter(tr.T("core.help.footer", version.AppVersion))
	for _, cat := range categories {
		lines := byCategory[cat]
		sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })
		var sb strings.Builder
		for _, l := range lines {
			fmt.Fprintf(&sb, "`/%s` %s\n", l.name, l.description)
		}
		e.AddField(cat, sb.String())
	}
	return e.MessageEmbed
}
