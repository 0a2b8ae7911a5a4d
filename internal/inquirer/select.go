package inquirer

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// SelectOption is one choice rendered as a select menu entry.
type SelectOption[T ID] struct {
	ID          T
	Label       string
	Description string
	Emoji       string
}

type SelectOptions[T ID] struct {
	Delivery    Delivery
	Message     Message
	Choices     []SelectOption[T]
	Placeholder string
	Timeout     time.Duration

	// PostAnswerMessage replaces the prompt's content once answered.
	PostAnswerMessage string
	// SetDisabledWhenDone leaves the menu rendered but disabled after the
	// answer. Without it the menu is removed and the content kept; a Private
	// prompt without PostAnswerMessage is deleted either way.
	SetDisabledWhenDone bool
}

// AskSelectMenu renders the choices as a single-select menu and returns the
// id of the entry the actor picked.
func AskSelectMenu[T ID](ctx context.Context, e *Engine, it *Interaction, opts SelectOptions[T]) (T, error) {
	var zero T

	ids := make([]T, len(opts.Choices))
	encoded := make([]string, len(opts.Choices))
	for i, c := range opts.Choices {
		if c.Label == "" {
			return zero, fmt.Errorf("%w: option %d has no label", ErrInvalidChoice, i)
		}
		ids[i] = c.ID
		encoded[i] = encodeID(c.ID)
	}
	if err := validateIDs(encoded, maxSelectOptions, 0); err != nil {
		return zero, err
	}

	s, err := e.open(it, opts.Delivery)
	if err != nil {
		return zero, err
	}

	w := e.collector.expectComponent(s.token, it.ActorID(), discordgo.SelectMenuComponent)
	if err := e.render(s, opts.Message, selectRow(s.token, opts, encoded, false)); err != nil {
		w.cancel()
		return zero, err
	}

	timeout := e.timeoutOr(opts.Timeout)
	e.logger.Debug("Awaiting menu answer",
		zap.String("token", s.token), zap.String("delivery", s.delivery.String()), zap.Duration("timeout", timeout))

	answer, err := w.wait(ctx, timeout)
	if err != nil {
		return zero, err
	}
	e.acknowledgeAnswer(answer)

	values := answer.MessageComponentData().Values
	if len(values) == 0 {
		return zero, ErrNoMatchingChoice
	}
	id, ok := lookup(ids, values[0])
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNoMatchingChoice, values[0])
	}

	var rows []discordgo.MessageComponent
	if opts.SetDisabledWhenDone {
		rows = selectRow(s.token, opts, encoded, true)
	}
	switch {
	case opts.PostAnswerMessage != "":
		content := opts.PostAnswerMessage
		e.update(s, &content, rows)
	case s.delivery == Private && s.message != nil:
		e.deleteMessage(s.channel.ID, s.message.ID)
	case s.delivery == Public:
		e.update(s, nil, rows)
	}
	return id, nil
}

func selectRow[T ID](token string, opts SelectOptions[T], encoded []string, disabled bool) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, len(opts.Choices))
	for i, c := range opts.Choices {
		options[i] = discordgo.SelectMenuOption{
			Label:       c.Label,
			Value:       encoded[i],
			Description: c.Description,
			Emoji:       ParseEmoji(c.Emoji),
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    token,
				Placeholder: opts.Placeholder,
				Options:     options,
				Disabled:    disabled,
			},
		}},
	}
}
