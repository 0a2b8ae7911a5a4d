// Package commandtest wires command dependencies against in-memory fakes
// and a throwaway SQLite database.
package commandtest

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/config"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/inquirer/inquirertest"
	"github.com/akane-bot/akane/internal/storage"
	"github.com/akane-bot/akane/internal/tickets"
	"github.com/akane-bot/akane/pkg/cmd"
)

const BotID = "bot"

// API is a fake command.API. Guild state is seeded with AddRole and
// AddMember; moderation calls are recorded.
type API struct {
	*inquirertest.Messenger

	mu       sync.Mutex
	guilds   map[string]*discordgo.Guild
	roles    map[string][]*discordgo.Role
	members  map[string]*discordgo.Member
	bans     map[string]string
	timeouts map[string]*time.Time
	kicked   []string
	threads  []*discordgo.ThreadStart
	thMember []string
	banErr   error
}

func NewAPI() *API {
	return &API{
		Messenger: inquirertest.NewMessenger(),
		guilds:    make(map[string]*discordgo.Guild),
		roles:     make(map[string][]*discordgo.Role),
		members:   make(map[string]*discordgo.Member),
		bans:      make(map[string]string),
		timeouts:  make(map[string]*time.Time),
	}
}

func key(guildID, userID string) string { return guildID + "/" + userID }

// AddGuild registers a guild owned by ownerID.
func (f *API) AddGuild(id, name, ownerID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guilds[id] = &discordgo.Guild{ID: id, Name: name, OwnerID: ownerID}
}

// AddRole registers a role at position.
func (f *API) AddRole(guildID, roleID string, position int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[guildID] = append(f.roles[guildID], &discordgo.Role{ID: roleID, Position: position})
}

// AddMember registers userID as a member holding roles.
func (f *API) AddMember(guildID, userID string, roles ...string) *discordgo.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &discordgo.Member{
		GuildID: guildID,
		User:    &discordgo.User{ID: userID, Username: "user" + userID},
		Roles:   roles,
	}
	f.members[key(guildID, userID)] = m
	return m
}

// FailBans makes GuildBanCreateWithReason fail with err.
func (f *API) FailBans(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banErr = err
}

func (f *API) Guild(guildID string) (*discordgo.Guild, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.guilds[guildID]
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g, nil
}

func (f *API) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Role(nil), f.roles[guildID]...), nil
}

func (f *API) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[key(guildID, userID)]
	if !ok {
		return nil, &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember}}
	}
	return m, nil
}

func (f *API) GuildBan(guildID, userID string) (*discordgo.GuildBan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reason, ok := f.bans[key(guildID, userID)]
	if !ok {
		return nil, &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownBan}}
	}
	return &discordgo.GuildBan{Reason: reason, User: &discordgo.User{ID: userID}}, nil
}

func (f *API) GuildBanCreateWithReason(guildID, userID, reason string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.banErr != nil {
		return f.banErr
	}
	f.bans[key(guildID, userID)] = reason
	delete(f.members, key(guildID, userID))
	return nil
}

func (f *API) GuildBanDelete(guildID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bans[key(guildID, userID)]; !ok {
		return &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownBan}}
	}
	delete(f.bans, key(guildID, userID))
	return nil
}

func (f *API) GuildMemberDeleteWithReason(guildID, userID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicked = append(f.kicked, key(guildID, userID))
	delete(f.members, key(guildID, userID))
	return nil
}

func (f *API) GuildMemberTimeout(guildID, userID string, until *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeouts[key(guildID, userID)] = until
	if m, ok := f.members[key(guildID, userID)]; ok {
		m.CommunicationDisabledUntil = until
	}
	return nil
}

func (f *API) ThreadStartComplex(channelID string, data *discordgo.ThreadStart) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads = append(f.threads, data)
	return &discordgo.Channel{ID: fmt.Sprintf("t%d", len(f.threads)), ParentID: channelID, Type: data.Type}, nil
}

func (f *API) ThreadMemberAdd(threadID, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.thMember = append(f.thMember, threadID+"/"+memberID)
	return nil
}

func (f *API) BotUserID() string { return BotID }

func (f *API) HeartbeatLatency() time.Duration { return 42 * time.Millisecond }

// Banned reports whether userID is banned from guildID.
func (f *API) Banned(guildID, userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.bans[key(guildID, userID)]
	return ok
}

// Kicked lists "guild/user" for every kick.
func (f *API) Kicked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.kicked...)
}

// Timeout returns the communication timeout set on userID and whether any
// timeout call was made.
func (f *API) Timeout(guildID, userID string) (*time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.timeouts[key(guildID, userID)]
	return t, ok
}

// Threads lists started threads.
func (f *API) Threads() []*discordgo.ThreadStart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.ThreadStart(nil), f.threads...)
}

var _ command.API = (*API)(nil)

// NewStorage opens a fresh SQLite database under t.TempDir.
func NewStorage(t testing.TB) *storage.Storage {
	t.Helper()
	s, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "akane.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// NewDeps builds command dependencies over api with an en-US default
// locale and short prompt timeouts.
func NewDeps(t testing.TB, api *API) *command.Deps {
	t.Helper()
	bundle, err := i18n.New("en-US")
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}
	store := NewStorage(t)
	engine := inquirer.New(api, inquirer.NewCollector(), zap.NewNop(), inquirer.WithDefaultTimeout(2*time.Second))
	return &command.Deps{
		API:      api,
		Engine:   engine,
		Wizard:   tickets.NewWizard(engine, api, store, zap.NewNop()),
		Storage:  store,
		I18n:     bundle,
		Registry: cmd.NewRegistry(),
		Config:   &config.Config{DefaultLocale: "en-US", DeveloperID: "dev"},
		Logger:   zap.NewNop(),
	}
}

// Slash builds a slash invocation context for name with options, issued by
// userID in guildID (DM when guildID is empty).
func Slash(deps *command.Deps, guildID, channelID, userID, name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *command.SlashInteractionContext {
	i := inquirertest.SlashCommand(guildID, channelID, userID)
	i.Locale = discordgo.EnglishUS
	i.Data = discordgo.ApplicationCommandInteractionData{Name: name, Options: opts}
	return &command.SlashInteractionContext{Base: command.NewBase(deps, i)}
}

// Option builds a slash command option.
func Option(name string, typ discordgo.ApplicationCommandOptionType, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: typ, Value: value}
}

// Sub builds a subcommand option wrapping opts.
func Sub(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: opts,
	}
}

// LastReply returns the latest edit of the interaction reply, falling back
// to the latest immediate response.
func LastReply(api *API) inquirertest.Render {
	renders := api.Renders()
	for i := len(renders) - 1; i >= 0; i-- {
		if renders[i].Kind == inquirertest.ReplyEdit {
			return renders[i]
		}
	}
	responses := api.Responses()
	for i := len(responses) - 1; i >= 0; i-- {
		r := responses[i].Response
		if r.Type == discordgo.InteractionResponseChannelMessageWithSource && r.Data != nil {
			content := r.Data.Content
			return inquirertest.Render{Content: &content, Embeds: r.Data.Embeds, Components: r.Data.Components}
		}
	}
	return inquirertest.Render{}
}

// LastText is the content of LastReply.
func LastText(api *API) string { return LastReply(api).Text() }
