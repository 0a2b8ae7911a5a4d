package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/pkg/cmd"
)

// CoreGroup can never be disabled.
const CoreGroup = "core"

// WithGroupAccessCheck refuses commands whose group a guild has disabled.
func WithGroupAccessCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		meta, ok := command.Meta(c)
		if !ok || meta.Group() == "" || meta.Group() == CoreGroup {
			return c
		}
		group := meta.Group()
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			b, ok := command.FromInvocation(inv)
			if !ok || !b.Interaction.InGuild() || b.Storage == nil {
				return c.Run(ctx, inv)
			}
			disabled, err := b.Storage.IsGroupDisabled(ctx, b.Interaction.GuildID, group)
			if err != nil {
				// a broken lookup should not lock everyone out
				b.Logger.Warn("Failed to check command group",
					zap.String("group", group), zap.String("guild", b.Interaction.GuildID), zap.Error(err))
				return c.Run(ctx, inv)
			}
			if disabled {
				return b.Reply(b.T("errors.group_disabled", group))
			}
			return c.Run(ctx, inv)
		})
	}
}
