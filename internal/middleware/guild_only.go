package middleware

import (
	"context"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/pkg/cmd"
)

// GuildOnly rejects interactions outside a guild.
func GuildOnly() cmd.Guard {
	return func(_ context.Context, inv *cmd.Invocation) (bool, error) {
		b, ok := command.FromInvocation(inv)
		if !ok {
			return true, nil
		}
		if b.Interaction.InGuild() && b.Interaction.Member != nil {
			return true, nil
		}
		return false, b.Reply(b.T("errors.not_in_guild"))
	}
}
