package inquirer

import "errors"

var (
	// ErrPromptTimeout is returned when no qualifying answer arrived before
	// the prompt's deadline. Callers are expected to branch on it.
	ErrPromptTimeout = errors.New("inquirer: prompt timed out")

	// ErrChannelUnavailable is returned when the delivery channel cannot be
	// resolved or does not accept text.
	ErrChannelUnavailable = errors.New("inquirer: delivery channel unavailable")

	// ErrNoMatchingChoice means a reported selection maps to no offered
	// option. It indicates a component/state mismatch.
	ErrNoMatchingChoice = errors.New("inquirer: selection matches no choice")

	ErrNoChoices       = errors.New("inquirer: no choices offered")
	ErrDuplicateChoice = errors.New("inquirer: duplicate choice id")
	ErrInvalidChoice   = errors.New("inquirer: invalid choice")
)
