package tickets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/storage"
)

const (
	DefaultRetryTimeout  = 20 * time.Second
	DefaultAnswerTimeout = 2 * time.Minute
)

// Outcome is how a wizard run ended.
type Outcome int

const (
	// Finalized runs posted a panel.
	Finalized Outcome = iota
	// DMUnavailable runs stopped because the actor's DMs stayed closed.
	DMUnavailable
	// TimedOut runs stopped because the actor did not answer a step.
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Finalized:
		return "finalized"
	case DMUnavailable:
		return "dm-unavailable"
	case TimedOut:
		return "timed-out"
	}
	return "unknown"
}

// Result describes a finished wizard run.
type Result struct {
	Outcome  Outcome
	Delivery inquirer.Delivery
	// Categories holds the configured categories of a Finalized run, nil
	// otherwise.
	Categories     []Category
	PanelMessageID string
}

type continueChoice string

const (
	choiceContinue continueChoice = "continue"
	choiceFinish   continueChoice = "finish"
)

// Wizard runs the ticket setup dialogue.
type Wizard struct {
	engine *inquirer.Engine
	api    API
	store  Store
	logger *zap.Logger

	retryTimeout  time.Duration
	answerTimeout time.Duration
	now           func() time.Time
}

type WizardOption func(*Wizard)

// WithRetryTimeout sets how long the closed-DM notice waits before probing
// again.
func WithRetryTimeout(d time.Duration) WizardOption {
	return func(w *Wizard) {
		if d > 0 {
			w.retryTimeout = d
		}
	}
}

// WithAnswerTimeout bounds each free-text answer and continue prompt.
func WithAnswerTimeout(d time.Duration) WizardOption {
	return func(w *Wizard) {
		if d > 0 {
			w.answerTimeout = d
		}
	}
}

func NewWizard(engine *inquirer.Engine, api API, store Store, logger *zap.Logger, opts ...WizardOption) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wizard{
		engine:        engine,
		api:           api,
		store:         store,
		logger:        logger,
		retryTimeout:  DefaultRetryTimeout,
		answerTimeout: DefaultAnswerTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Configure runs the setup dialogue for it and, once the actor finishes,
// posts a panel into targetChannelID. Timeouts and closed DMs end the run
// with a message to the actor and a nil error.
func (w *Wizard) Configure(ctx context.Context, it *inquirer.Interaction, tr Translator, targetChannelID string, typ Type) (*Result, error) {
	if !Supported(typ) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}
	log := w.logger.With(zap.String("guild", it.GuildID), zap.String("user", it.ActorID()))

	delivery, err := inquirer.AskButtons(ctx, w.engine, it, inquirer.ButtonOptions[inquirer.Delivery]{
		Delivery: inquirer.Public,
		Message:  inquirer.Message{Content: tr.T("tickets.wizard.ask_context")},
		Choices: []inquirer.Button[inquirer.Delivery]{
			{ID: inquirer.Public, Label: tr.T("tickets.wizard.context_guild"), Emoji: "🏢", Style: discordgo.PrimaryButton},
			{ID: inquirer.Private, Label: tr.T("tickets.wizard.context_dm"), Emoji: "🕵️", Style: discordgo.SecondaryButton},
		},
	})
	if err != nil {
		return w.stopOnTimeout(it, tr, inquirer.Public, err)
	}

	if delivery == inquirer.Private {
		var done bool
		delivery, done, err = w.probeDM(ctx, it, tr)
		if err != nil {
			return nil, err
		}
		if done {
			log.Info("Ticket setup stopped, DMs closed")
			return &Result{Outcome: DMUnavailable, Delivery: inquirer.Public}, nil
		}
		if delivery == inquirer.Private {
			w.replaceReply(it, tr.T("tickets.wizard.moved_to_dm"))
		}
	}
	log.Debug("Ticket setup delivery chosen", zap.String("delivery", delivery.String()))

	var categories []Category
	for {
		c, err := w.collectCategory(ctx, it, tr, delivery)
		if err != nil {
			return w.stopOnTimeout(it, tr, delivery, err)
		}
		categories = append(categories, c)

		if len(categories) == MaxCategories {
			w.notify(it, delivery, tr.T("tickets.wizard.limit_reached", MaxCategories))
			break
		}

		next, err := inquirer.AskButtons(ctx, w.engine, it, inquirer.ButtonOptions[continueChoice]{
			Delivery: delivery,
			Message:  inquirer.Message{Content: tr.T("tickets.wizard.continue", c.Glyph, c.Name)},
			Timeout:  w.answerTimeout,
			Choices: []inquirer.Button[continueChoice]{
				{ID: choiceContinue, Label: tr.T("tickets.wizard.add_more"), Emoji: "➕", Style: discordgo.PrimaryButton},
				{ID: choiceFinish, Label: tr.T("tickets.wizard.finish"), Emoji: "🏁", Style: discordgo.SecondaryButton},
			},
		})
		if err != nil {
			return w.stopOnTimeout(it, tr, delivery, err)
		}
		if next == choiceFinish {
			break
		}
	}

	msgID, err := w.finalize(ctx, it, tr, targetChannelID, typ, categories)
	if err != nil {
		return nil, err
	}
	log.Info("Ticket panel created",
		zap.String("channel", targetChannelID), zap.String("message", msgID), zap.Int("categories", len(categories)))

	return &Result{
		Outcome:        Finalized,
		Delivery:       delivery,
		Categories:     categories,
		PanelMessageID: msgID,
	}, nil
}

// probeDM checks the actor's DMs and runs the single retry. done reports a
// run that must stop because the DMs stayed closed.
func (w *Wizard) probeDM(ctx context.Context, it *inquirer.Interaction, tr Translator) (delivery inquirer.Delivery, done bool, err error) {
	if w.dmOpen(it, tr) {
		return inquirer.Private, false, nil
	}

	retryAt := w.now().Add(w.retryTimeout)
	choice, err := inquirer.AskButtons(ctx, w.engine, it, inquirer.ButtonOptions[inquirer.Delivery]{
		Delivery: inquirer.Public,
		Message:  inquirer.Message{Content: tr.T("tickets.wizard.dm_closed_retry", relativeTime(retryAt))},
		Timeout:  w.retryTimeout,
		Choices: []inquirer.Button[inquirer.Delivery]{
			{ID: inquirer.Public, Label: tr.T("tickets.wizard.context_guild"), Emoji: "🏢", Style: discordgo.PrimaryButton},
		},
	})
	switch {
	case err == nil:
		return choice, false, nil
	case errors.Is(err, inquirer.ErrPromptTimeout):
		if w.dmOpen(it, tr) {
			return inquirer.Private, false, nil
		}
		w.replaceReply(it, tr.T("tickets.wizard.dm_still_closed"))
		return inquirer.Public, true, nil
	default:
		return "", false, fmt.Errorf("dm retry prompt: %w", err)
	}
}

// dmOpen sends the intro notice; closed DMs are an expected condition.
func (w *Wizard) dmOpen(it *inquirer.Interaction, tr Translator) bool {
	ch, err := w.api.UserChannelCreate(it.ActorID())
	if err != nil {
		w.logger.Debug("DM channel unavailable", zap.String("user", it.ActorID()), zap.Error(err))
		return false
	}
	if _, err := w.api.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{Content: tr.T("tickets.wizard.dm_intro")}); err != nil {
		w.logger.Debug("DM closed", zap.String("user", it.ActorID()), zap.Error(err))
		return false
	}
	return true
}

type categoryStep struct {
	question string
	invalid  string
	valid    func(string) bool
}

var categorySteps = [...]categoryStep{
	{question: "tickets.wizard.ask_name", invalid: "tickets.wizard.invalid_name", valid: func(s string) bool { return s != "" }},
	{question: "tickets.wizard.ask_description"},
	{question: "tickets.wizard.ask_glyph", invalid: "tickets.wizard.invalid_glyph", valid: inquirer.IsEmoji},
}

// collectCategory asks name, description and glyph in order, asking again
// until an answer is usable on a panel. Answers are deleted in Public so the
// channel stays clean.
func (w *Wizard) collectCategory(ctx context.Context, it *inquirer.Interaction, tr Translator, delivery inquirer.Delivery) (Category, error) {
	var answers [len(categorySteps)]string
	for i, step := range categorySteps {
		content := tr.T(step.question)
		for {
			msgs, err := inquirer.AskMessages(ctx, w.engine, it, inquirer.MessageOptions{
				Delivery:        delivery,
				Message:         inquirer.Message{Content: content},
				MaxMessages:     1,
				Timeout:         w.answerTimeout,
				DeleteRetrieved: delivery == inquirer.Public,
			})
			if err != nil {
				return Category{}, err
			}
			answer := strings.TrimSpace(msgs[0].Content)
			if step.valid == nil || step.valid(answer) {
				answers[i] = answer
				break
			}
			content = tr.T(step.invalid) + "\n" + tr.T(step.question)
		}
	}
	return Category{Name: answers[0], Description: answers[1], Glyph: answers[2]}, nil
}

// finalize posts the panel and only then reports success to the actor.
func (w *Wizard) finalize(ctx context.Context, it *inquirer.Interaction, tr Translator, channelID string, typ Type, categories []Category) (string, error) {
	msg, err := w.api.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    tr.T("tickets.panel.content"),
		Components: PanelComponents(tr.T("tickets.panel.placeholder"), categories),
	})
	if err != nil {
		w.replaceReply(it, tr.T("tickets.wizard.panel_failed"))
		return "", fmt.Errorf("post ticket panel: %w", err)
	}

	panel := &storage.TicketPanel{
		MessageID:  msg.ID,
		GuildID:    it.GuildID,
		ChannelID:  channelID,
		TicketType: string(typ),
		CreatedBy:  it.ActorID(),
		Categories: make([]storage.TicketCategory, len(categories)),
	}
	for i, c := range categories {
		panel.Categories[i] = storage.TicketCategory{Name: c.Name, Description: c.Description, Glyph: c.Glyph}
	}
	if err := w.store.SaveTicketPanel(ctx, panel); err != nil {
		w.replaceReply(it, tr.T("tickets.wizard.panel_failed"))
		return msg.ID, err
	}
	w.replaceReply(it, tr.T("tickets.wizard.finished", len(categories)))
	return msg.ID, nil
}

// PanelComponents renders the standing menu. Option values are category
// positions.
func PanelComponents(placeholder string, categories []Category) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, len(categories))
	for i, c := range categories {
		options[i] = discordgo.SelectMenuOption{
			Label:       truncate(c.Name, 100),
			Value:       strconv.Itoa(i),
			Description: truncate(c.Description, 100),
			Emoji:       inquirer.ParseEmoji(c.Glyph),
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    PanelCustomID,
				Placeholder: placeholder,
				Options:     options,
			},
		}},
	}
}

// stopOnTimeout turns a step timeout into a TimedOut result and passes any
// other error through.
func (w *Wizard) stopOnTimeout(it *inquirer.Interaction, tr Translator, delivery inquirer.Delivery, err error) (*Result, error) {
	if !errors.Is(err, inquirer.ErrPromptTimeout) {
		return nil, err
	}
	w.logger.Info("Ticket setup timed out", zap.String("user", it.ActorID()), zap.String("delivery", delivery.String()))
	w.notify(it, delivery, tr.T("tickets.wizard.timed_out"))
	return &Result{Outcome: TimedOut, Delivery: delivery}, nil
}

// notify tells the actor something wherever the dialogue currently is.
func (w *Wizard) notify(it *inquirer.Interaction, delivery inquirer.Delivery, content string) {
	w.replaceReply(it, content)
	if delivery != inquirer.Private {
		return
	}
	ch, err := w.api.UserChannelCreate(it.ActorID())
	if err == nil {
		_, err = w.api.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{Content: content})
	}
	if err != nil {
		w.logger.Debug("Failed to notify in DM", zap.Error(err))
	}
}

// replaceReply swaps the reply's content and removes its controls.
func (w *Wizard) replaceReply(it *inquirer.Interaction, content string) {
	if !it.Acknowledged() {
		return
	}
	components := []discordgo.MessageComponent{}
	embeds := []*discordgo.MessageEmbed{}
	if _, err := w.api.InteractionResponseEdit(it.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
		Embeds:     &embeds,
	}); err != nil {
		w.logger.Warn("Failed to edit ticket setup reply", zap.Error(err))
	}
}

func relativeTime(t time.Time) string { return fmt.Sprintf("<t:%d:R>", t.Unix()) }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
