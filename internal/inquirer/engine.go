package inquirer

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a prompt when neither the call nor the engine sets one.
const DefaultTimeout = 30 * time.Second

// Message is the caller-supplied content rendered above a prompt's controls.
type Message struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
}

// Engine runs prompts: it resolves the delivery channel, makes sure the
// triggering interaction has a reply to edit, renders, and waits on the
// Collector for the answer.
type Engine struct {
	api       Messenger
	collector *Collector
	logger    *zap.Logger
	timeout   time.Duration
	newToken  func() string
}

type Option func(*Engine)

// WithDefaultTimeout overrides DefaultTimeout for calls that set none.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithTokenGenerator replaces the session token source.
func WithTokenGenerator(fn func() string) Option {
	return func(e *Engine) { e.newToken = fn }
}

func New(api Messenger, collector *Collector, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = NewCollector()
	}
	e := &Engine{
		api:       api,
		collector: collector,
		logger:    logger,
		timeout:   DefaultTimeout,
		newToken:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Collector() *Collector { return e.collector }

func (e *Engine) timeoutOr(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return e.timeout
}

// session is the per-call state of one prompt.
type session struct {
	it       *Interaction
	delivery Delivery
	channel  *discordgo.Channel
	message  *discordgo.Message
	token    string
}

// open runs the resolve and acknowledge phases.
func (e *Engine) open(it *Interaction, delivery Delivery) (*session, error) {
	ch, err := e.resolveChannel(it, delivery)
	if err != nil {
		return nil, err
	}
	if err := e.ensureAcknowledged(it, delivery); err != nil {
		return nil, err
	}
	return &session{it: it, delivery: delivery, channel: ch, token: e.newToken()}, nil
}

func (e *Engine) resolveChannel(it *Interaction, delivery Delivery) (*discordgo.Channel, error) {
	var (
		ch  *discordgo.Channel
		err error
	)
	switch delivery {
	case Public:
		if it.ChannelID == "" {
			return nil, fmt.Errorf("%w: interaction has no channel", ErrChannelUnavailable)
		}
		ch, err = e.api.Channel(it.ChannelID)
	case Private:
		actor := it.ActorID()
		if actor == "" {
			return nil, fmt.Errorf("%w: interaction has no actor", ErrChannelUnavailable)
		}
		ch, err = e.api.UserChannelCreate(actor)
	default:
		return nil, fmt.Errorf("%w: unknown delivery %q", ErrChannelUnavailable, delivery)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	if ch == nil {
		return nil, ErrChannelUnavailable
	}
	if textCapable(ch.Type) {
		return ch, nil
	}
	return nil, fmt.Errorf("%w: channel %s is not text-capable (type %d)", ErrChannelUnavailable, ch.ID, ch.Type)
}

// textCapable reports whether messages can be sent to a channel of typ.
// Voice channels carry a text chat; categories and forums do not.
func textCapable(typ discordgo.ChannelType) bool {
	switch typ {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeDM,
		discordgo.ChannelTypeGroupDM,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildVoice:
		return true
	}
	return false
}

// ensureAcknowledged defers the interaction ephemerally when nothing has
// answered it yet. Public prompts need the reply as their render target;
// Private prompts in a guild need it so the slash command does not fail.
func (e *Engine) ensureAcknowledged(it *Interaction, delivery Delivery) error {
	if it.Acknowledged() {
		return nil
	}
	if delivery != Public && !it.InGuild() {
		return nil
	}
	err := e.api.InteractionRespond(it.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		return fmt.Errorf("acknowledge interaction: %w", err)
	}
	it.MarkAcknowledged()
	return nil
}

// render shows msg with components: editing the reply in Public, sending
// into the DM channel in Private. Errors here are not swallowed.
func (e *Engine) render(s *session, msg Message, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	embeds := msg.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}

	var (
		m   *discordgo.Message
		err error
	)
	if s.delivery == Public {
		content := msg.Content
		m, err = e.api.InteractionResponseEdit(s.it.Interaction, &discordgo.WebhookEdit{
			Content:    &content,
			Embeds:     &embeds,
			Components: &components,
		})
	} else {
		m, err = e.api.ChannelMessageSendComplex(s.channel.ID, &discordgo.MessageSend{
			Content:    msg.Content,
			Embeds:     embeds,
			Components: components,
		})
	}
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}
	s.message = m
	return nil
}

// update is the best-effort post-answer edit. A nil content leaves the text
// untouched.
func (e *Engine) update(s *session, content *string, components []discordgo.MessageComponent) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	var err error
	if s.delivery == Public {
		_, err = e.api.InteractionResponseEdit(s.it.Interaction, &discordgo.WebhookEdit{
			Content:    content,
			Components: &components,
		})
	} else if s.message != nil {
		_, err = e.api.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         s.message.ID,
			Channel:    s.channel.ID,
			Content:    content,
			Components: &components,
		})
	}
	if err != nil {
		e.logger.Warn("Failed to update prompt after answer",
			zap.String("token", s.token), zap.Error(err))
	}
}

// deleteMessage removes a message, logging instead of failing.
func (e *Engine) deleteMessage(channelID, messageID string) {
	if err := e.api.ChannelMessageDelete(channelID, messageID); err != nil {
		e.logger.Debug("Failed to delete prompt message",
			zap.String("channel", channelID), zap.String("message", messageID), zap.Error(err))
	}
}

// acknowledgeAnswer tells Discord the component click was handled without
// changing the message.
func (e *Engine) acknowledgeAnswer(answer *discordgo.Interaction) {
	err := e.api.InteractionRespond(answer, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		e.logger.Debug("Failed to acknowledge prompt answer", zap.String("interaction", answer.ID), zap.Error(err))
	}
}
