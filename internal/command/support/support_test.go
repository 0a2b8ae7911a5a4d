package support

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/command/commandtest"
	"github.com/akane-bot/akane/internal/inquirer/inquirertest"
	"github.com/akane-bot/akane/internal/middleware"
	"github.com/akane-bot/akane/internal/tickets"
	"github.com/akane-bot/akane/pkg/cmd"
)

func setup(channel, typ string) *discordgo.ApplicationCommandInteractionDataOption {
	return commandtest.Sub("setup",
		commandtest.Option("channel", discordgo.ApplicationCommandOptionChannel, channel),
		commandtest.Option("type", discordgo.ApplicationCommandOptionString, typ))
}

func TestSetupRejectsUnsupportedTypes(t *testing.T) {
	api := commandtest.NewAPI()
	deps := commandtest.NewDeps(t, api)
	c := New(deps.I18n)

	sc := commandtest.Slash(deps, "g1", "c1", "u1", "tickets", setup("c2", string(tickets.TypeVoice)))
	if err := c.Run(context.Background(), sc); err != nil {
		t.Fatal(err)
	}
	if got := commandtest.LastText(api); got != "Only thread tickets are supported for now." {
		t.Fatalf("reply = %q", got)
	}
}

func TestSetupStartsWizard(t *testing.T) {
	api := commandtest.NewAPI()
	api.AddChannel("c1", discordgo.ChannelTypeGuildText)
	deps := commandtest.NewDeps(t, api)
	c := New(deps.I18n)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	sc := commandtest.Slash(deps, "g1", "c1", "u1", "tickets", setup("c2", string(tickets.TypeThread)))
	go func() { done <- c.Run(ctx, sc) }()

	r := api.Await(t, "Where should the questions be asked?")
	r.Button(t, "Server")
	r.Button(t, "Private")

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wizard ignored cancellation")
	}
}

func TestPanelSelectionBypassesCommandPermissions(t *testing.T) {
	api := commandtest.NewAPI()
	deps := commandtest.NewDeps(t, api)
	wrapped := cmd.Apply(&command.DiscordAdapter{Cmd: New(deps.I18n)}, middleware.Standard()...)

	i := inquirertest.Select(tickets.PanelCustomID, "u9", "0")
	i.GuildID = "g1"
	i.ChannelID = "c1"
	i.Message = &discordgo.Message{ID: "gone", ChannelID: "c1"}
	cc := &command.ComponentInteractionContext{Base: command.NewBase(deps, i)}

	if err := wrapped.Run(context.Background(), &cmd.Invocation{Data: cc}); err != nil {
		t.Fatal(err)
	}
	if got := commandtest.LastText(api); got != "This ticket panel is no longer available." {
		t.Fatalf("reply = %q", got)
	}
}

func TestDefinitionIsLocalized(t *testing.T) {
	api := commandtest.NewAPI()
	deps := commandtest.NewDeps(t, api)
	def := command.Definition(&command.DiscordAdapter{Cmd: New(deps.I18n)})

	if def.Name != "tickets" || len(def.Options) != 1 || def.Options[0].Name != "setup" {
		t.Fatalf("definition = %+v", def)
	}
	if def.DMPermission == nil || *def.DMPermission {
		t.Fatal("tickets must be guild only")
	}
	opts := def.Options[0].Options
	if len(opts) != 2 || len(opts[1].Choices) != len(tickets.Types) {
		t.Fatalf("setup options = %+v", opts)
	}
	if got := opts[0].NameLocalizations[discordgo.PortugueseBR]; got == "" {
		t.Fatal("channel option has no pt-BR name")
	}
}
