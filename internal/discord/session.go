package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
)

var _ command.API = (*SessionMessenger)(nil)

// SessionMessenger adapts a live session to command.API. Reads go to the
// gateway state cache first and fall back to REST.
type SessionMessenger struct {
	s *discordgo.Session
}

func NewSessionMessenger(s *discordgo.Session) *SessionMessenger {
	return &SessionMessenger{s: s}
}

func (m *SessionMessenger) Channel(channelID string) (*discordgo.Channel, error) {
	if c, err := m.s.State.Channel(channelID); err == nil {
		return c, nil
	}
	return m.s.Channel(channelID)
}

func (m *SessionMessenger) UserChannelCreate(userID string) (*discordgo.Channel, error) {
	return m.s.UserChannelCreate(userID)
}

func (m *SessionMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return m.s.ChannelMessageSendComplex(channelID, data)
}

func (m *SessionMessenger) ChannelMessageEditComplex(e *discordgo.MessageEdit) (*discordgo.Message, error) {
	return m.s.ChannelMessageEditComplex(e)
}

func (m *SessionMessenger) ChannelMessageDelete(channelID, messageID string) error {
	return m.s.ChannelMessageDelete(channelID, messageID)
}

func (m *SessionMessenger) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return m.s.InteractionRespond(i, resp)
}

func (m *SessionMessenger) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	return m.s.InteractionResponseEdit(i, edit)
}

func (m *SessionMessenger) ThreadStartComplex(channelID string, data *discordgo.ThreadStart) (*discordgo.Channel, error) {
	return m.s.ThreadStartComplex(channelID, data)
}

func (m *SessionMessenger) ThreadMemberAdd(threadID, memberID string) error {
	return m.s.ThreadMemberAdd(threadID, memberID)
}

func (m *SessionMessenger) Guild(guildID string) (*discordgo.Guild, error) {
	if g, err := m.s.State.Guild(guildID); err == nil {
		return g, nil
	}
	return m.s.Guild(guildID)
}

func (m *SessionMessenger) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	if g, err := m.s.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
		return g.Roles, nil
	}
	return m.s.GuildRoles(guildID)
}

func (m *SessionMessenger) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	if mem, err := m.s.State.Member(guildID, userID); err == nil {
		return mem, nil
	}
	return m.s.GuildMember(guildID, userID)
}

func (m *SessionMessenger) GuildBan(guildID, userID string) (*discordgo.GuildBan, error) {
	return m.s.GuildBan(guildID, userID)
}

func (m *SessionMessenger) GuildBanCreateWithReason(guildID, userID, reason string, days int) error {
	return m.s.GuildBanCreateWithReason(guildID, userID, reason, days)
}

func (m *SessionMessenger) GuildBanDelete(guildID, userID string) error {
	return m.s.GuildBanDelete(guildID, userID)
}

func (m *SessionMessenger) GuildMemberDeleteWithReason(guildID, userID, reason string) error {
	return m.s.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (m *SessionMessenger) GuildMemberTimeout(guildID, userID string, until *time.Time) error {
	return m.s.GuildMemberTimeout(guildID, userID, until)
}

func (m *SessionMessenger) BotUserID() string {
	if m.s.State != nil && m.s.State.User != nil {
		return m.s.State.User.ID
	}
	return ""
}

func (m *SessionMessenger) HeartbeatLatency() time.Duration { return m.s.HeartbeatLatency() }

func (m *SessionMessenger) ApplicationCommands(appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	return m.s.ApplicationCommands(appID, guildID)
}

func (m *SessionMessenger) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error) {
	return m.s.ApplicationCommandCreate(appID, guildID, cmd)
}

func (m *SessionMessenger) ApplicationCommandDelete(appID, guildID, cmdID string) error {
	return m.s.ApplicationCommandDelete(appID, guildID, cmdID)
}

func (m *SessionMessenger) GuildLeave(guildID string) error { return m.s.GuildLeave(guildID) }
