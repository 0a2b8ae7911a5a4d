package inquirer

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type MessageOptions struct {
	Delivery Delivery
	Message  Message
	// MaxMessages caps the collection; zero collects until the deadline.
	MaxMessages int
	Timeout     time.Duration

	// DeleteRetrieved removes the collected messages afterwards.
	DeleteRetrieved bool
	// DeleteQuestion removes the prompt itself afterwards (Private only).
	DeleteQuestion bool
}

// AskMessages renders the prompt and collects free-text messages from the
// actor in arrival order. Fewer messages than MaxMessages, or none when
// uncapped, yields the partial set together with ErrPromptTimeout; nothing
// is cleaned up in that case.
func AskMessages(ctx context.Context, e *Engine, it *Interaction, opts MessageOptions) ([]*discordgo.Message, error) {
	s, err := e.open(it, opts.Delivery)
	if err != nil {
		return nil, err
	}

	w := e.collector.expectMessages(s.channel.ID, it.ActorID(), opts.MaxMessages)
	if err := e.render(s, opts.Message, nil); err != nil {
		w.stop()
		return nil, err
	}

	timeout := e.timeoutOr(opts.Timeout)
	e.logger.Debug("Awaiting messages",
		zap.String("token", s.token), zap.String("channel", s.channel.ID),
		zap.Int("max", opts.MaxMessages), zap.Duration("timeout", timeout))

	msgs, err := w.wait(ctx, timeout)
	if err != nil {
		if errors.Is(err, ErrPromptTimeout) {
			return msgs, err
		}
		return nil, err
	}

	if opts.DeleteRetrieved {
		for _, m := range msgs {
			e.deleteMessage(m.ChannelID, m.ID)
		}
	}
	if opts.DeleteQuestion && s.delivery == Private && s.message != nil {
		e.deleteMessage(s.channel.ID, s.message.ID)
	}
	return msgs, nil
}
