package inquirer

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Button is one choice rendered as a button.
type Button[T ID] struct {
	ID    T
	Label string
	Style discordgo.ButtonStyle
	Emoji string
}

type ButtonOptions[T ID] struct {
	Delivery Delivery
	Message  Message
	Choices  []Button[T]
	// Timeout falls back to the engine default when zero.
	Timeout time.Duration

	// PostAnswerMessage replaces the prompt's content once answered. When
	// empty a Private prompt is deleted and a Public one is left as is.
	PostAnswerMessage string
	// SetButtonsDisabled keeps the buttons, disabled, under PostAnswerMessage
	// instead of removing them.
	SetButtonsDisabled bool
}

// AskButtons renders one button per choice and returns the id of the button
// the actor pressed.
func AskButtons[T ID](ctx context.Context, e *Engine, it *Interaction, opts ButtonOptions[T]) (T, error) {
	var zero T

	ids := make([]T, len(opts.Choices))
	encoded := make([]string, len(opts.Choices))
	for i, c := range opts.Choices {
		if c.Label == "" && c.Emoji == "" {
			return zero, ErrInvalidChoice
		}
		ids[i] = c.ID
		encoded[i] = encodeID(c.ID)
	}
	// uuid tokens are 36 characters
	if err := validateIDs(encoded, maxButtons, 36+len(IDSeparator)); err != nil {
		return zero, err
	}

	s, err := e.open(it, opts.Delivery)
	if err != nil {
		return zero, err
	}

	w := e.collector.expectComponent(s.token, it.ActorID(), discordgo.ButtonComponent)
	if err := e.render(s, opts.Message, buttonRows(s.token, opts.Choices, encoded, false)); err != nil {
		w.cancel()
		return zero, err
	}

	timeout := e.timeoutOr(opts.Timeout)
	e.logger.Debug("Awaiting button answer",
		zap.String("token", s.token), zap.String("delivery", s.delivery.String()), zap.Duration("timeout", timeout))

	answer, err := w.wait(ctx, timeout)
	if err != nil {
		return zero, err
	}
	e.acknowledgeAnswer(answer)

	_, choice, _ := strings.Cut(answer.MessageComponentData().CustomID, IDSeparator)
	id, ok := lookup(ids, choice)
	if !ok {
		return zero, ErrNoMatchingChoice
	}

	switch {
	case opts.PostAnswerMessage != "":
		var rows []discordgo.MessageComponent
		if opts.SetButtonsDisabled {
			rows = buttonRows(s.token, opts.Choices, encoded, true)
		}
		content := opts.PostAnswerMessage
		e.update(s, &content, rows)
	case s.delivery == Private && s.message != nil:
		e.deleteMessage(s.channel.ID, s.message.ID)
	}
	return id, nil
}

func buttonRows[T ID](token string, choices []Button[T], encoded []string, disabled bool) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row discordgo.ActionsRow
	for i, c := range choices {
		style := c.Style
		if style == 0 {
			style = discordgo.SecondaryButton
		}
		row.Components = append(row.Components, discordgo.Button{
			Label:    c.Label,
			Style:    style,
			Emoji:    ParseEmoji(c.Emoji),
			CustomID: token + IDSeparator + encoded[i],
			Disabled: disabled,
		})
		if len(row.Components) == buttonsPerRow {
			rows = append(rows, row)
			row = discordgo.ActionsRow{}
		}
	}
	if len(row.Components) > 0 {
		rows = append(rows, row)
	}
	return rows
}
