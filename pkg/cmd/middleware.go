package cmd

// Middleware wraps a command (logging, guards, group checks).
type Middleware func(Command) Command

// Apply applies middlewares in order; the last in the list is the outermost
// and runs first.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
