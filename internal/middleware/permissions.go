package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/pkg/cmd"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:    "Create Instant Invite",
	discordgo.PermissionKickMembers:            "Kick Members",
	discordgo.PermissionBanMembers:             "Ban Members",
	discordgo.PermissionAdministrator:          "Administrator",
	discordgo.PermissionManageChannels:         "Manage Channels",
	discordgo.PermissionManageGuild:            "Manage Server",
	discordgo.PermissionAddReactions:           "Add Reactions",
	discordgo.PermissionViewAuditLogs:          "View Audit Logs",
	discordgo.PermissionViewChannel:            "View Channel",
	discordgo.PermissionSendMessages:           "Send Messages",
	discordgo.PermissionManageMessages:         "Manage Messages",
	discordgo.PermissionEmbedLinks:             "Embed Links",
	discordgo.PermissionReadMessageHistory:     "Read Message History",
	discordgo.PermissionUseApplicationCommands: "Use Application Commands",
	discordgo.PermissionManageThreads:          "Manage Threads",
	discordgo.PermissionCreatePrivateThreads:   "Create Private Threads",
	discordgo.PermissionSendMessagesInThreads:  "Send Messages in Threads",
	discordgo.PermissionManageNicknames:        "Manage Nicknames",
	discordgo.PermissionManageRoles:            "Manage Roles",
	discordgo.PermissionModerateMembers:        "Moderate Members",
}

// PermissionName is the display name of a single permission bit.
func PermissionName(p int64) string {
	if name, ok := PermissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}

// Missing returns the entries of required not granted by have. Administrator
// grants everything.
func Missing(have int64, required []int64) []int64 {
	if have&discordgo.PermissionAdministrator != 0 {
		return nil
	}
	var out []int64
	for _, p := range required {
		if have&p != p {
			out = append(out, p)
		}
	}
	return out
}

func names(perms []int64) string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = "`" + PermissionName(p) + "`"
	}
	return strings.Join(out, ", ")
}

// UserPermissions rejects actors missing any of required in the channel the
// interaction came from. The configured developer passes. Only slash
// invocations are checked; components a command owns are open to everyone
// who can see them.
func UserPermissions(required ...int64) cmd.Guard {
	return func(_ context.Context, inv *cmd.Invocation) (bool, error) {
		sc, ok := inv.Data.(*command.SlashInteractionContext)
		if !ok {
			return true, nil
		}
		b := sc.Common()
		if b.Config != nil && b.Config.DeveloperID != "" && b.Interaction.ActorID() == b.Config.DeveloperID {
			return true, nil
		}
		var have int64
		if m := b.Interaction.Member; m != nil {
			have = m.Permissions
		}
		missing := Missing(have, required)
		if len(missing) == 0 {
			return true, nil
		}
		return false, b.Reply(b.T("errors.user_missing_permissions", len(missing), names(missing)))
	}
}

// BotPermissions rejects interactions where the bot lacks any of required,
// going by the app permissions Discord sends with the interaction.
func BotPermissions(required ...int64) cmd.Guard {
	return func(_ context.Context, inv *cmd.Invocation) (bool, error) {
		sc, ok := inv.Data.(*command.SlashInteractionContext)
		if !ok {
			return true, nil
		}
		b := sc.Common()
		missing := Missing(b.Interaction.AppPermissions, required)
		if len(missing) == 0 {
			return true, nil
		}
		return false, b.Reply(b.T("errors.bot_missing_permissions", len(missing), names(missing)))
	}
}
