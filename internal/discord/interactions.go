package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/pkg/cmd"
)

// Dispatcher routes gateway events to pending prompts and registered
// commands. It holds no session so it can be driven directly.
type Dispatcher struct {
	deps *command.Deps
}

func NewDispatcher(deps *command.Deps) *Dispatcher {
	return &Dispatcher{deps: deps}
}

// Interaction handles one interaction until the command it starts returns.
func (d *Dispatcher) Interaction(ctx context.Context, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		d.slash(ctx, i)
	case discordgo.InteractionMessageComponent:
		d.component(ctx, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		d.autocomplete(ctx, i)
	default:
		d.deps.Logger.Debug("Unhandled interaction type", zap.Int("type", int(i.Type)))
	}
}

// Message offers a created message to pending message collectors.
func (d *Dispatcher) Message(m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	d.deps.Engine.Collector().DispatchMessage(m)
}

func (d *Dispatcher) slash(ctx context.Context, i *discordgo.Interaction) {
	name := i.ApplicationCommandData().Name
	c, ok := d.deps.Registry.Get(name)
	if !ok {
		d.deps.Logger.Warn("Unknown command", zap.String("command", name))
		return
	}
	sc := &command.SlashInteractionContext{Base: command.NewBase(d.deps, i)}
	d.run(ctx, c, &cmd.Invocation{Data: sc})
}

func (d *Dispatcher) component(ctx context.Context, i *discordgo.Interaction) {
	switch d.deps.Engine.Collector().DispatchComponent(i) {
	case inquirer.Foreign:
		// someone else's prompt: acknowledge so the client stops spinning
		err := d.deps.API.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			d.deps.Logger.Warn("Failed to acknowledge foreign click", zap.Error(err))
		}
		return
	case inquirer.Unmatched:
	default:
		return
	}

	customID := i.MessageComponentData().CustomID
	c := d.componentOwner(customID)
	if c == nil {
		d.deps.Logger.Debug("No handler for component", zap.String("custom_id", customID))
		return
	}
	cc := &command.ComponentInteractionContext{Base: command.NewBase(d.deps, i)}
	d.run(ctx, c, &cmd.Invocation{Data: cc})
}

// componentOwner finds the command that declared a prefix of customID.
func (d *Dispatcher) componentOwner(customID string) cmd.Command {
	for _, c := range d.deps.Registry.GetAll() {
		h, ok := cmd.Root(c).(command.ComponentInteractionHandler)
		if !ok {
			continue
		}
		for _, p := range h.ComponentPrefixes() {
			if p != "" && strings.HasPrefix(customID, p) {
				return c
			}
		}
	}
	return nil
}

func (d *Dispatcher) autocomplete(ctx context.Context, i *discordgo.Interaction) {
	name := i.ApplicationCommandData().Name
	c, ok := d.deps.Registry.Get(name)
	if !ok {
		return
	}
	ap, ok := cmd.Root(c).(command.AutocompleteProvider)
	if !ok {
		return
	}
	ac := &command.AutocompleteContext{Base: command.NewBase(d.deps, i)}
	choices, err := ap.Autocomplete(ctx, ac)
	if err != nil {
		d.deps.Logger.Warn("Autocomplete failed", zap.String("command", name), zap.Error(err))
	}
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	if err := ac.RespondChoices(choices); err != nil {
		d.deps.Logger.Warn("Failed to send autocomplete choices", zap.String("command", name), zap.Error(err))
	}
}

func (d *Dispatcher) run(ctx context.Context, c cmd.Command, inv *cmd.Invocation) {
	if err := c.Run(ctx, inv); err != nil {
		d.deps.Logger.Error("Command failed", zap.String("command", c.Name()), zap.Error(err))
	}
}
