package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/i18n"
)

// BaseLocale names commands and options for Discord; other locales are sent
// as localizations.
const BaseLocale = "en-US"

// SlashCommand builds a localized definition from the catalog entries
// key+".name" and key+".description".
func SlashCommand(b *i18n.Bundle, key string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommand {
	base := b.For(BaseLocale)
	return &discordgo.ApplicationCommand{
		Type:                     discordgo.ChatApplicationCommand,
		Name:                     base.T(key + ".name"),
		NameLocalizations:        b.Localizations(key + ".name"),
		Description:              base.T(key + ".description"),
		DescriptionLocalizations: b.Localizations(key + ".description"),
		Options:                  opts,
	}
}

// GuildCommand is SlashCommand restricted to guilds and, by default, to
// members holding perms.
func GuildCommand(b *i18n.Bundle, key string, perms int64, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommand {
	def := SlashCommand(b, key, opts...)
	dm := false
	def.DMPermission = &dm
	if perms != 0 {
		def.DefaultMemberPermissions = &perms
	}
	return def
}

// SlashOption builds a localized option from key+".name" and
// key+".description".
func SlashOption(b *i18n.Bundle, key string, typ discordgo.ApplicationCommandOptionType, required bool) *discordgo.ApplicationCommandOption {
	base := b.For(BaseLocale)
	return &discordgo.ApplicationCommandOption{
		Type:                     typ,
		Name:                     base.T(key + ".name"),
		NameLocalizations:        *b.Localizations(key + ".name"),
		Description:              base.T(key + ".description"),
		DescriptionLocalizations: *b.Localizations(key + ".description"),
		Required:                 required,
	}
}

// SubCommand builds a localized subcommand holding opts.
func SubCommand(b *i18n.Bundle, key string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	o := SlashOption(b, key, discordgo.ApplicationCommandOptionSubCommand, false)
	o.Options = opts
	return o
}
