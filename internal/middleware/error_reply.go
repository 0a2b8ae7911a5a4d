package middleware

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/pkg/cmd"
)

// WithErrorReply logs a failed command and answers the actor with a
// localized error. Development builds append the raw error.
func WithErrorReply() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)
			if err == nil {
				return nil
			}
			b, ok := command.FromInvocation(inv)
			if !ok {
				return err
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}

			key := "errors.unknown"
			if errors.Is(err, inquirer.ErrPromptTimeout) {
				key = "errors.prompt_timeout"
			}
			b.Logger.Error("Command failed",
				zap.String("command", c.Name()),
				zap.String("interaction", b.Interaction.ID),
				zap.Error(err))

			msg := b.T(key)
			if b.Config != nil && b.Config.Development {
				msg += "\n```" + err.Error() + "```"
			}
			if rerr := b.Reply(msg); rerr != nil {
				b.Logger.Warn("Failed to report command error", zap.String("command", c.Name()), zap.Error(rerr))
			}
			return nil
		})
	}
}
