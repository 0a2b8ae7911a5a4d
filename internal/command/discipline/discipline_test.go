package discipline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/command/commandtest"
	"github.com/akane-bot/akane/internal/duration"
	"github.com/akane-bot/akane/internal/inquirer/inquirertest"
	"github.com/akane-bot/akane/internal/storage"
)

const (
	guildID = "g1"
	modID   = "mod"
	target  = "u2"
)

type harness struct {
	api  *commandtest.API
	deps *command.Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := commandtest.NewAPI()
	deps := commandtest.NewDeps(t, api)
	api.AddGuild(guildID, "Guild", "owner")
	api.AddChannel("c1", discordgo.ChannelTypeGuildText)
	api.AddRole(guildID, "admin", 10)
	api.AddRole(guildID, "bot", 8)
	api.AddRole(guildID, "mod", 5)
	api.AddRole(guildID, "member", 1)
	api.AddMember(guildID, commandtest.BotID, "bot")
	api.AddMember(guildID, modID, "mod")
	api.AddMember(guildID, target, "member")
	return &harness{api: api, deps: deps}
}

func (h *harness) run(t *testing.T, c command.DiscordCommand, opts ...*discordgo.ApplicationCommandInteractionDataOption) error {
	t.Helper()
	sc := commandtest.Slash(h.deps, guildID, "c1", modID, c.Name(), opts...)
	sc.Interaction.Member.Roles = []string{"mod"}
	return c.Run(context.Background(), sc)
}

func (h *harness) history(t *testing.T) []storage.Punishment {
	t.Helper()
	list, err := h.deps.Storage.ListPunishments(context.Background(), guildID, target)
	if err != nil {
		t.Fatal(err)
	}
	return list
}

func (h *harness) dms(userID string) []inquirertest.Render {
	var out []inquirertest.Render
	for _, r := range h.api.Renders() {
		if r.Kind == inquirertest.Send && r.ChannelID == inquirertest.DMChannelID(userID) {
			out = append(out, r)
		}
	}
	return out
}

func user(id string) *discordgo.ApplicationCommandInteractionDataOption {
	return commandtest.Option("user", discordgo.ApplicationCommandOptionUser, id)
}

func str(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return commandtest.Option(name, discordgo.ApplicationCommandOptionString, v)
}

func silent() *discordgo.ApplicationCommandInteractionDataOption {
	return commandtest.Option("silent", discordgo.ApplicationCommandOptionBoolean, true)
}

func find[T command.DiscordCommand](t *testing.T, h *harness) T {
	t.Helper()
	for _, c := range Commands(h.deps.I18n) {
		if v, ok := c.(T); ok {
			return v
		}
	}
	t.Fatalf("command %T not registered", *new(T))
	return *new(T)
}

func TestBanNotifiesBansAndRecords(t *testing.T) {
	h := newHarness(t)
	ban := find[*BanCommand](t, h)

	before := time.Now()
	if err := h.run(t, ban, user(target), str("reason", "spam"), str("time", "7d"),
		str("proofs", "https://i.imgur.com/a.png")); err != nil {
		t.Fatal(err)
	}

	if !h.api.Banned(guildID, target) {
		t.Fatal("target not banned")
	}
	dms := h.dms(target)
	if len(dms) != 1 || len(dms[0].Embeds) != 1 || !strings.Contains(dms[0].Embeds[0].Title, "banned from Guild") {
		t.Fatalf("notification = %+v", dms)
	}
	if got := commandtest.LastText(h.api); got != "User useru2 was banned from this server." {
		t.Fatalf("reply = %q", got)
	}

	list := h.history(t)
	if len(list) != 1 {
		t.Fatalf("history = %+v", list)
	}
	p := list[0]
	if p.Type != storage.PunishmentBan || p.Reason != "spam" || p.PunisherDiscordID != modID || len(p.Proofs) != 1 {
		t.Fatalf("punishment = %+v", p)
	}
	if p.ExpiresAt == nil || p.ExpiresAt.Before(before.Add(7*24*time.Hour-time.Second)) {
		t.Fatalf("expires = %v", p.ExpiresAt)
	}
}

func TestPunishReplies(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		opts  []*discordgo.ApplicationCommandInteractionDataOption
		want  string
		dms   int
	}{
		{"silent", nil, []*discordgo.ApplicationCommandInteractionDataOption{silent()},
			"User useru2 was kicked without being notified by DM.", 0},
		{"dm closed", func(h *harness) { h.api.FailDMCreate(errors.New("closed")) }, nil,
			"User useru2 was kicked, but I could not DM them.", 0},
		{"notified", nil, nil, "User useru2 was kicked.", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.setup != nil {
				tt.setup(h)
			}
			opts := append([]*discordgo.ApplicationCommandInteractionDataOption{user(target)}, tt.opts...)
			if err := h.run(t, find[*KickCommand](t, h), opts...); err != nil {
				t.Fatal(err)
			}
			if got := commandtest.LastText(h.api); got != tt.want {
				t.Fatalf("reply = %q, want %q", got, tt.want)
			}
			if n := len(h.dms(target)); n != tt.dms {
				t.Fatalf("dms = %d, want %d", n, tt.dms)
			}
			if k := h.api.Kicked(); len(k) != 1 || k[0] != guildID+"/"+target {
				t.Fatalf("kicked = %v", k)
			}
		})
	}
}

func TestPunishRejections(t *testing.T) {
	tests := []struct {
		name   string
		target string
		opts   []*discordgo.ApplicationCommandInteractionDataOption
		want   string
	}{
		{"self", modID, nil, "Hey... you can't punish yourself."},
		{"outranks bot", "boss", nil, "This user has a role higher than mine."},
		{"outranks actor", "peer", nil, "This user has a role higher than yours."},
		{"not a member", "ghost", nil, "This user is not a member of this server."},
		{"untrusted proof", target, []*discordgo.ApplicationCommandInteractionDataOption{str("proofs", "https://example.com/a.png")}, "is not accepted"},
		{"autocomplete placeholder", target, []*discordgo.ApplicationCommandInteractionDataOption{str("time", duration.ValueHelp)}, "is not valid"},
		{"bad time", target, []*discordgo.ApplicationCommandInteractionDataOption{str("time", "7x")}, "(7x) is not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.api.AddMember(guildID, "boss", "admin")
			h.api.AddMember(guildID, "peer", "mod")

			opts := append([]*discordgo.ApplicationCommandInteractionDataOption{user(tt.target)}, tt.opts...)
			if err := h.run(t, find[*BanCommand](t, h), opts...); err != nil {
				t.Fatal(err)
			}
			if got := commandtest.LastText(h.api); !strings.Contains(got, tt.want) {
				t.Fatalf("reply = %q, want it to contain %q", got, tt.want)
			}
			if h.api.Banned(guildID, tt.target) {
				t.Fatal("rejected ban was applied")
			}
			if len(h.dms(tt.target)) != 0 {
				t.Fatal("rejected ban notified the target")
			}
		})
	}
}

func TestFailedActionLeavesNoRecord(t *testing.T) {
	h := newHarness(t)
	h.api.FailBans(errors.New("missing access"))

	err := h.run(t, find[*BanCommand](t, h), user(target), silent())
	if err == nil || !strings.Contains(err.Error(), "missing access") {
		t.Fatalf("err = %v", err)
	}
	if list := h.history(t); len(list) != 0 {
		t.Fatalf("history = %+v", list)
	}
}

func TestWarnOnlyRecords(t *testing.T) {
	h := newHarness(t)
	if err := h.run(t, find[*WarnCommand](t, h), user(target), str("reason", "flood"), silent()); err != nil {
		t.Fatal(err)
	}
	list := h.history(t)
	if len(list) != 1 || list[0].Type != storage.PunishmentWarn || list[0].ExpiresAt != nil {
		t.Fatalf("history = %+v", list)
	}
	if h.api.Banned(guildID, target) || len(h.api.Kicked()) != 0 {
		t.Fatal("warn acted on the member")
	}
}

func TestMute(t *testing.T) {
	h := newHarness(t)
	mute := find[*MuteCommand](t, h)

	if err := h.run(t, mute, user(target), str("time", "5w")); err != nil {
		t.Fatal(err)
	}
	if got := commandtest.LastText(h.api); got != "A mute can last at most 28 days." {
		t.Fatalf("reply = %q", got)
	}
	if _, called := h.api.Timeout(guildID, target); called {
		t.Fatal("too long mute applied")
	}

	before := time.Now()
	if err := h.run(t, mute, user(target), silent()); err != nil {
		t.Fatal(err)
	}
	until, _ := h.api.Timeout(guildID, target)
	if until == nil || until.Before(before.Add(DefaultMute-time.Second)) || until.After(time.Now().Add(DefaultMute)) {
		t.Fatalf("timeout = %v, want about an hour", until)
	}
	if got := commandtest.LastText(h.api); !strings.HasPrefix(got, "User useru2 was muted until <t:") {
		t.Fatalf("reply = %q", got)
	}
	list := h.history(t)
	if len(list) != 1 || list[0].Type != storage.PunishmentMute || list[0].ExpiresAt == nil {
		t.Fatalf("history = %+v", list)
	}
}

func TestUnmute(t *testing.T) {
	h := newHarness(t)
	unmute := find[*UnmuteCommand](t, h)

	if err := h.run(t, unmute, user(target)); err != nil {
		t.Fatal(err)
	}
	if got := commandtest.LastText(h.api); got != "User useru2 is not muted." {
		t.Fatalf("reply = %q", got)
	}

	if err := h.run(t, find[*MuteCommand](t, h), user(target), str("time", "10m"), silent()); err != nil {
		t.Fatal(err)
	}
	if err := h.run(t, unmute, user(target), str("reason", "appealed")); err != nil {
		t.Fatal(err)
	}
	if until, _ := h.api.Timeout(guildID, target); until != nil {
		t.Fatalf("timeout still set: %v", until)
	}
	if got := commandtest.LastText(h.api); got != "User useru2 is no longer muted." {
		t.Fatalf("reply = %q", got)
	}

	list := h.history(t)
	if len(list) != 2 || list[0].Type != storage.PunishmentRevertMute || list[0].Reason != "appealed" {
		t.Fatalf("history = %+v", list)
	}
	if list[1].Type != storage.PunishmentMute || list[1].RevertedAt == nil {
		t.Fatalf("mute not marked reverted: %+v", list[1])
	}
}

func TestUnban(t *testing.T) {
	h := newHarness(t)
	unban := find[*UnbanCommand](t, h)

	if err := h.run(t, unban, user(target)); err != nil {
		t.Fatal(err)
	}
	if got := commandtest.LastText(h.api); got != "User <@u2> is not banned." {
		t.Fatalf("reply = %q", got)
	}

	if err := h.run(t, find[*BanCommand](t, h), user(target), silent()); err != nil {
		t.Fatal(err)
	}
	if err := h.run(t, unban, user(target)); err != nil {
		t.Fatal(err)
	}
	if h.api.Banned(guildID, target) {
		t.Fatal("still banned")
	}
	list := h.history(t)
	if len(list) != 2 || list[0].Type != storage.PunishmentRevertBan || list[1].RevertedAt == nil {
		t.Fatalf("history = %+v", list)
	}
}

func TestTimeAutocomplete(t *testing.T) {
	h := newHarness(t)
	i := inquirertest.SlashCommand(guildID, "c1", modID)
	i.Type = discordgo.InteractionApplicationCommandAutocomplete
	i.Data = discordgo.ApplicationCommandInteractionData{Name: "mute", Options: []*discordgo.ApplicationCommandInteractionDataOption{
		user(target),
		{Name: "time", Type: discordgo.ApplicationCommandOptionString, Value: "0", Focused: true},
	}}
	ac := &command.AutocompleteContext{Base: command.NewBase(h.deps, i)}

	choices, err := find[*MuteCommand](t, h).Autocomplete(context.Background(), ac)
	if err != nil {
		t.Fatal(err)
	}
	if len(choices) != 1 || choices[0].Value != duration.ValueReset {
		t.Fatalf("choices = %+v", choices)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"", 0, true},
		{duration.ValueReset, 0, true},
		{duration.ValueEmpty, 0, false},
		{duration.ValueExceededMaxLength, 0, false},
		{"90s", 90 * time.Second, true},
		{"2h", 2 * time.Hour, true},
		{"h2", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseLength(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
