package moderation

import (
	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/akane-bot/akane/internal/storage"
)

const NotificationColor = 0x141414

// Translator resolves localized strings by key.
type Translator interface {
	T(key string, args ...any) string
}

// Action names a punishment for message keys.
func Action(t storage.PunishmentType) string {
	switch t {
	case storage.PunishmentBan:
		return "ban"
	case storage.PunishmentKick:
		return "kick"
	case storage.PunishmentWarn:
		return "warn"
	case storage.PunishmentMute:
		return "mute"
	}
	return ""
}

// Notification is the DM sent to a punished user.
func Notification(tr Translator, t storage.PunishmentType, guildName, moderator, reason string) *discordgo.MessageEmbed {
	action := Action(t)
	if reason == "" {
		reason = tr.T("common.no_reason")
	}
	return embed.NewEmbed().
		SetColor(NotificationColor).
		SetTitle(tr.T("moderation."+action+".notification.title", guildName)).
		SetDescription(tr.T("moderation."+action+".notification.description", guildName, moderator, reason)).
		SetFooter(tr.T("common.contest_footer")).
		MessageEmbed
}

// Outcome picks the reply key for a finished punishment.
func Outcome(t storage.PunishmentType, silent, dmFailed bool) string {
	base := "moderation." + Action(t) + "."
	switch {
	case silent:
		return base + "success_silent"
	case dmFailed:
		return base + "success_dm_failed"
	}
	return base + "success"
}
