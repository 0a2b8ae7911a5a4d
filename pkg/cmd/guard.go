package cmd

import "context"

// Guard is a precondition checked before a command runs. A guard that
// rejects the invocation returns false and has already answered it; the
// command and the guards after it do not run.
type Guard func(ctx context.Context, inv *Invocation) (bool, error)

// Guarded returns a middleware that runs guards in order before the
// command. The first guard that rejects owns the response.
func Guarded(guards ...Guard) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) error {
			for _, g := range guards {
				ok, err := g(ctx, inv)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			return c.Run(ctx, inv)
		})
	}
}
