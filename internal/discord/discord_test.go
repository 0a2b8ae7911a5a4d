package discord

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/command/commandtest"
	"github.com/akane-bot/akane/internal/command/core"
	"github.com/akane-bot/akane/internal/command/showcase"
	"github.com/akane-bot/akane/internal/command/support"
	"github.com/akane-bot/akane/internal/inquirer/inquirertest"
	"github.com/akane-bot/akane/internal/middleware"
	"github.com/akane-bot/akane/internal/tickets"
)

type fakeCommands struct {
	mu      sync.Mutex
	remote  map[string]map[string]*discordgo.ApplicationCommand
	created []string
	deleted []string
	failing map[string]error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{
		remote:  make(map[string]map[string]*discordgo.ApplicationCommand),
		failing: make(map[string]error),
	}
}

func (f *fakeCommands) seed(guildID string, names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.guild(guildID)[n] = &discordgo.ApplicationCommand{ID: guildID + "-" + n, Name: n}
	}
}

func (f *fakeCommands) guild(id string) map[string]*discordgo.ApplicationCommand {
	if f.remote[id] == nil {
		f.remote[id] = make(map[string]*discordgo.ApplicationCommand)
	}
	return f.remote[id]
}

func (f *fakeCommands) ApplicationCommands(_, guildID string) ([]*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*discordgo.ApplicationCommand
	for _, c := range f.guild(guildID) {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCommands) ApplicationCommandCreate(_, guildID string, c *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing[c.Name]; err != nil {
		return nil, err
	}
	f.created = append(f.created, guildID+"/"+c.Name)
	f.guild(guildID)[c.Name] = &discordgo.ApplicationCommand{ID: guildID + "-" + c.Name, Name: c.Name}
	return c, nil
}

func (f *fakeCommands) ApplicationCommandDelete(_, guildID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, c := range f.guild(guildID) {
		if c.ID == id {
			delete(f.remote[guildID], name)
			f.deleted = append(f.deleted, guildID+"/"+name)
		}
	}
	return nil
}

func (f *fakeCommands) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created, f.deleted = nil, nil
}

func def(name, description string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: name, Description: description, Type: discordgo.ChatApplicationCommand}
}

func TestRegistrarSync(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommands()
	api.seed("g1", "obsolete")
	store := commandtest.NewStorage(t)
	r := NewRegistrar(api, store, zap.NewNop())

	defs := []*discordgo.ApplicationCommand{def("ping", "Shows the latency."), def("help", "Lists commands.")}
	if err := r.Sync(ctx, "app", "g1", defs); err != nil {
		t.Fatal(err)
	}
	if len(api.created) != 2 || len(api.deleted) != 1 || api.deleted[0] != "g1/obsolete" {
		t.Fatalf("created %v, deleted %v", api.created, api.deleted)
	}

	api.reset()
	if err := r.Sync(ctx, "app", "g1", defs); err != nil {
		t.Fatal(err)
	}
	if len(api.created)+len(api.deleted) != 0 {
		t.Fatalf("unchanged sync touched %v / %v", api.created, api.deleted)
	}

	api.reset()
	defs[1] = def("help", "Lists every command.")
	if err := r.Sync(ctx, "app", "g1", defs); err != nil {
		t.Fatal(err)
	}
	if len(api.created) != 1 || api.created[0] != "g1/help" {
		t.Fatalf("changed sync created %v", api.created)
	}

	// removed by hand on Discord: the stored hash alone does not skip it
	api.mu.Lock()
	delete(api.remote["g1"], "ping")
	api.mu.Unlock()
	api.reset()
	if err := r.Sync(ctx, "app", "g1", defs); err != nil {
		t.Fatal(err)
	}
	if len(api.created) != 1 || api.created[0] != "g1/ping" {
		t.Fatalf("missing command not recreated: %v", api.created)
	}
}

func TestRegistrarKeepsFailedHashUnset(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommands()
	api.failing["help"] = &discordgo.RESTError{Response: nil, Message: &discordgo.APIErrorMessage{Code: 50035}}
	store := commandtest.NewStorage(t)
	r := NewRegistrar(api, store, zap.NewNop())
	r.retry.MaxAttempts = 2
	r.retry.InitialDelay = time.Millisecond

	err := r.Sync(ctx, "app", "g1", []*discordgo.ApplicationCommand{def("ping", "p"), def("help", "h")})
	if err == nil {
		t.Fatal("expected the failed create to be reported")
	}
	hashes, herr := store.CommandHashes(ctx, "g1")
	if herr != nil {
		t.Fatal(herr)
	}
	if _, ok := hashes["help"]; ok || hashes["ping"] == "" {
		t.Fatalf("hashes = %v", hashes)
	}
}

func TestSyncAll(t *testing.T) {
	api := newFakeCommands()
	r := NewRegistrar(api, commandtest.NewStorage(t), zap.NewNop())
	guilds := []string{"g1", "g2", "g3"}
	err := r.SyncAll(context.Background(), "app", guilds, []*discordgo.ApplicationCommand{def("ping", "p")})
	if err != nil {
		t.Fatal(err)
	}
	if len(api.created) != len(guilds) {
		t.Fatalf("created %v", api.created)
	}
	for _, g := range guilds {
		hashes, err := r.store.CommandHashes(context.Background(), g)
		if err != nil || hashes["ping"] == "" {
			t.Fatalf("%s hashes = %v, %v", g, hashes, err)
		}
	}
}

func TestHashCoversLocalizations(t *testing.T) {
	a := def("help", "Lists commands.")
	b := def("help", "Lists commands.")
	if hashCommand(a) != hashCommand(b) {
		t.Fatal("equal definitions hash differently")
	}
	b.NameLocalizations = &map[discordgo.Locale]string{discordgo.PortugueseBR: "ajuda"}
	if hashCommand(a) == hashCommand(b) {
		t.Fatal("a new translation must change the hash")
	}
	a.Options = []*discordgo.ApplicationCommandOption{{Name: "x"}, {Name: "y"}}
	b.NameLocalizations = nil
	b.Options = []*discordgo.ApplicationCommandOption{{Name: "y"}, {Name: "x"}}
	if hashCommand(a) == hashCommand(b) {
		t.Fatal("option order must change the hash")
	}
}

func TestRestStatus(t *testing.T) {
	if restStatus(errors.New("plain")) != 0 {
		t.Fatal("plain errors carry no status")
	}
}

func newDispatcher(t *testing.T) (*commandtest.API, *command.Deps, *Dispatcher) {
	t.Helper()
	api := commandtest.NewAPI()
	api.AddChannel("c1", discordgo.ChannelTypeGuildText)
	deps := commandtest.NewDeps(t, api)
	all := append(core.Commands(deps.I18n), showcase.Commands(deps.I18n)...)
	all = append(all, support.New(deps.I18n))
	for _, c := range all {
		if err := command.Register(deps.Registry, c, middleware.Standard()...); err != nil {
			t.Fatal(err)
		}
	}
	return api, deps, NewDispatcher(deps)
}

func slash(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	i := inquirertest.SlashCommand("g1", "c1", "u1")
	i.Locale = discordgo.EnglishUS
	i.Data = discordgo.ApplicationCommandInteractionData{Name: name, Options: opts}
	return i
}

func TestDispatchSlashRunsThroughMiddleware(t *testing.T) {
	api, deps, d := newDispatcher(t)
	d.Interaction(context.Background(), slash("ping"))

	if got := commandtest.LastText(api); got != "Pong! Gateway latency: 42ms" {
		t.Fatalf("reply = %q", got)
	}
	history, err := deps.Storage.CommandHistory(context.Background(), "g1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Command != "ping" {
		t.Fatalf("history = %+v", history)
	}

	d.Interaction(context.Background(), slash("nope"))
	if n := len(api.Responses()); n != 1 {
		t.Fatalf("unknown command answered: %d responses", n)
	}
}

func TestDispatchForeignClickIsAcknowledged(t *testing.T) {
	api, _, d := newDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		d.Interaction(ctx, slash("ask-button"))
		close(done)
	}()

	r := api.Await(t, "Pick a color.")
	click := inquirertest.Click(r.Button(t, "Red").CustomID, "u9")
	d.Interaction(ctx, click)

	var acked bool
	for _, resp := range api.Responses() {
		if resp.Interaction == click && resp.Response.Type == discordgo.InteractionResponseDeferredMessageUpdate {
			acked = true
		}
	}
	if !acked {
		t.Fatal("foreign click was not acknowledged")
	}

	d.Interaction(ctx, inquirertest.Click(r.Button(t, "Red").CustomID, "u1"))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("prompt did not resolve")
	}
	if got := commandtest.LastText(api); got != "You picked Red." {
		t.Fatalf("reply = %q", got)
	}
}

func TestDispatchUnmatchedComponentByPrefix(t *testing.T) {
	api, _, d := newDispatcher(t)
	i := inquirertest.Select(tickets.PanelCustomID, "u9", "0")
	i.GuildID = "g1"
	i.ChannelID = "c1"
	i.Message = &discordgo.Message{ID: "gone", ChannelID: "c1"}

	d.Interaction(context.Background(), i)
	if got := commandtest.LastText(api); got != "This ticket panel is no longer available." {
		t.Fatalf("reply = %q", got)
	}
}

func TestDispatchAutocomplete(t *testing.T) {
	api, _, d := newDispatcher(t)
	i := slash("commands", commandtest.Sub("toggle", &discordgo.ApplicationCommandInteractionDataOption{
		Name: "group", Type: discordgo.ApplicationCommandOptionString, Value: "show", Focused: true,
	}))
	i.Type = discordgo.InteractionApplicationCommandAutocomplete

	d.Interaction(context.Background(), i)
	responses := api.Responses()
	if len(responses) != 1 {
		t.Fatalf("responses = %d", len(responses))
	}
	resp := responses[0].Response
	if resp.Type != discordgo.InteractionApplicationCommandAutocompleteResult ||
		len(resp.Data.Choices) != 1 || resp.Data.Choices[0].Value != showcase.Group {
		t.Fatalf("autocomplete = %+v", resp.Data)
	}
}

func TestDispatchMessageIgnoresBots(t *testing.T) {
	_, deps, d := newDispatcher(t)
	m := inquirertest.Message("c1", "b1", "hi")
	m.Author.Bot = true
	d.Message(m)
	if deps.Engine.Collector().Pending() != 0 {
		t.Fatal("nothing should be pending")
	}
}
