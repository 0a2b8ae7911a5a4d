package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/storage"
	"github.com/akane-bot/akane/pkg/cmd"
)

// WithCommandLogger records slash invocations in the guild's command
// history and logs them.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			slash, ok := inv.Data.(*command.SlashInteractionContext)
			if !ok {
				return err
			}
			it := slash.Interaction
			user := it.Actor()
			if user == nil {
				user = &discordgo.User{ID: "unknown", Username: "Unknown"}
			}
			slash.Logger.Info("Command executed",
				zap.String("command", c.Name()),
				zap.String("guild", it.GuildID),
				zap.String("user", user.ID),
				zap.Bool("failed", err != nil))

			if it.GuildID == "" || slash.Storage == nil {
				return err
			}
			entry := storage.CommandLogEntry{
				GuildID:   it.GuildID,
				ChannelID: it.ChannelID,
				UserID:    user.ID,
				Username:  user.Username,
				Command:   c.Name(),
				Param:     describeOptions(it.ApplicationCommandData().Options),
			}
			if e := slash.Storage.LogCommand(ctx, entry); e != nil {
				slash.Logger.Warn("Failed to log command", zap.String("command", c.Name()), zap.Error(e))
			}
			return err
		})
	}
}

// describeOptions renders options as "name=value" pairs, subcommands as
// their name.
func describeOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	var parts []string
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			parts = append(parts, o.Name)
			if inner := describeOptions(o.Options); inner != "" {
				parts = append(parts, inner)
			}
		default:
			parts = append(parts, o.Name+"="+optionValue(o))
		}
	}
	return strings.Join(parts, " ")
}

func optionValue(o *discordgo.ApplicationCommandInteractionDataOption) string {
	switch v := o.Value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
