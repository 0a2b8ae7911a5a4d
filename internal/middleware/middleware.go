// Package middleware holds the guards and wrappers applied to Discord
// commands when they are registered.
package middleware

import (
	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/pkg/cmd"
)

// Standard is the chain every command is registered with. cmd.Apply makes
// the last entry outermost, so an invocation passes the error reply, the
// command log and the group check before the guards.
func Standard() []cmd.Middleware {
	return []cmd.Middleware{
		WithGuards(),
		WithGroupAccessCheck(),
		WithCommandLogger(),
		WithErrorReply(),
	}
}

// WithGuards builds the guard pipeline from the command's DiscordMeta:
// in-guild, then the user's permissions, then the bot's.
func WithGuards() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		meta, ok := command.Meta(c)
		if !ok {
			return c
		}
		guards := []cmd.Guard{GuildOnly()}
		if perms := meta.UserPermissions(); len(perms) > 0 {
			guards = append(guards, UserPermissions(perms...))
		}
		if perms := meta.BotPermissions(); len(perms) > 0 {
			guards = append(guards, BotPermissions(perms...))
		}
		return cmd.Guarded(guards...)(c)
	}
}
