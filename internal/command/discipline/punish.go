package discipline

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/duration"
	"github.com/akane-bot/akane/internal/moderation"
	"github.com/akane-bot/akane/internal/storage"
)

// action is what distinguishes one punishment command from another.
type action struct {
	typ storage.PunishmentType
	// apply performs the punishment on Discord. length is the parsed time
	// option, zero when absent.
	apply func(api command.API, guildID, userID, reason string, length time.Duration) error
	// expires derives the stored expiry from length; nil means none.
	expires func(now time.Time, length time.Duration) *time.Time
	// extra renders additional reply arguments after the user tag.
	extra func(now time.Time, length time.Duration) []any
	// withTime enables the time option.
	withTime bool
	// maxLength rejects longer times when set.
	maxLength time.Duration
	// defaultLength replaces a missing time.
	defaultLength time.Duration
}

// punish runs a punishment: validate, check the role hierarchy, notify the
// target, act on Discord, record it, reply. A failed Discord action leaves
// no record behind.
func punish(ctx context.Context, c *command.SlashInteractionContext, a action) error {
	if err := c.Defer(); err != nil {
		return err
	}

	opts := c.Options()
	guildID := c.Interaction.GuildID
	targetID := opts.UserID("user")
	reason := opts.String("reason")
	silent := opts.Bool("silent")

	proofs, err := moderation.ParseProofs(opts.String("proofs"))
	if err != nil {
		return c.Reply(c.T(moderation.ErrorKey(err)))
	}

	var length time.Duration
	if a.withTime {
		raw := opts.String("time")
		d, ok := parseLength(raw)
		if !ok {
			return c.Reply(c.T("errors.invalid_time_format", raw))
		}
		if d == 0 {
			d = a.defaultLength
		}
		if a.maxLength > 0 && d > a.maxLength {
			days := int64(a.maxLength / duration.Day.Duration())
			return c.Reply(c.T("errors.mute_too_long", duration.UnitName(c.Printer, duration.Day, days)))
		}
		length = d
	}

	target, err := c.API.GuildMember(guildID, targetID)
	if err != nil {
		if restCode(err) == discordgo.ErrCodeUnknownMember {
			return c.Reply(c.T("errors.target_not_member"))
		}
		return fmt.Errorf("fetch target %s: %w", targetID, err)
	}
	if target.User == nil {
		target.User = command.ResolvedUser(c.Interaction.ApplicationCommandData(), targetID)
	}
	bot, err := c.API.GuildMember(guildID, c.API.BotUserID())
	if err != nil {
		return fmt.Errorf("fetch bot member: %w", err)
	}
	roles, err := c.API.GuildRoles(guildID)
	if err != nil {
		return fmt.Errorf("fetch roles: %w", err)
	}
	guild, err := c.API.Guild(guildID)
	if err != nil {
		return fmt.Errorf("fetch guild: %w", err)
	}

	actor := c.Interaction.Member
	if err := moderation.CheckHierarchy(bot, actor, target, roles, guild.OwnerID); err != nil {
		return c.Reply(c.T(moderation.ErrorKey(err)))
	}

	dmFailed := false
	if !silent {
		dmFailed = !notify(c, guild, target.User.ID, a.typ, tag(actor.User), reason)
	}

	auditReason := reason
	if auditReason == "" {
		auditReason = c.T("common.no_reason")
	}
	if err := a.apply(c.API, guildID, targetID, auditReason, length); err != nil {
		return fmt.Errorf("%s %s: %w", moderation.Action(a.typ), targetID, err)
	}

	now := time.Now()
	p := &storage.Punishment{Type: a.typ, Reason: reason, Proofs: proofs, CreatedAt: now}
	if a.expires != nil {
		p.ExpiresAt = a.expires(now, length)
	}
	if err := record(ctx, c, targetID, p); err != nil {
		return err
	}

	c.Logger.Info("Punishment applied",
		zap.String("type", string(a.typ)),
		zap.String("guild", guildID),
		zap.String("target", targetID),
		zap.String("moderator", actor.User.ID),
		zap.Int64("id", p.ID),
		zap.Bool("silent", silent),
		zap.Bool("dm_failed", dmFailed))

	args := []any{tag(target.User)}
	if a.extra != nil {
		args = append(args, a.extra(now, length)...)
	}
	return c.Reply(c.T(moderation.Outcome(a.typ, silent, dmFailed), args...))
}

// notify DMs the target in the guild's locale and reports whether it was
// delivered.
func notify(c *command.SlashInteractionContext, guild *discordgo.Guild, userID string, typ storage.PunishmentType, moderator, reason string) bool {
	tr := c.I18n.For(string(guild.PreferredLocale))
	ch, err := c.API.UserChannelCreate(userID)
	if err != nil {
		c.Logger.Debug("Cannot open DM with punished user", zap.String("user", userID), zap.Error(err))
		return false
	}
	_, err = c.API.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{moderation.Notification(tr, typ, guild.Name, moderator, reason)},
	})
	if err != nil {
		c.Logger.Debug("Cannot DM punished user", zap.String("user", userID), zap.Error(err))
		return false
	}
	return true
}

// record stores p against the guild, the target and the actor, creating
// their rows on first use.
func record(ctx context.Context, c *command.SlashInteractionContext, targetID string, p *storage.Punishment) error {
	guild, err := c.Storage.UpsertGuild(ctx, c.Interaction.GuildID)
	if err != nil {
		return err
	}
	target, err := c.Storage.UpsertUser(ctx, targetID, "", guild)
	if err != nil {
		return err
	}
	punisher, err := c.Storage.UpsertUser(ctx, c.Interaction.ActorID(), string(c.Interaction.Locale), guild)
	if err != nil {
		return err
	}
	p.GuildID, p.UserID, p.PunisherID = guild.ID, target.ID, punisher.ID
	_, err = c.Storage.CreatePunishment(ctx, p)
	return err
}

type BanCommand struct{ meta }

func (c *BanCommand) Name() string        { return "ban" }
func (c *BanCommand) Description() string { return c.describe("slash.ban") }
func (c *BanCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}
func (c *BanCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}

func (c *BanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.ban", discordgo.PermissionBanMembers, c.punishOptions(true)...)
}

func (c *BanCommand) Autocomplete(ctx context.Context, ac *command.AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	return timeAutocomplete{}.Autocomplete(ctx, ac)
}

func (c *BanCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	return punish(ctx, sc, action{
		typ:      storage.PunishmentBan,
		withTime: true,
		apply: func(api command.API, guildID, userID, reason string, _ time.Duration) error {
			return api.GuildBanCreateWithReason(guildID, userID, reason, 0)
		},
		expires: func(now time.Time, length time.Duration) *time.Time {
			if length == 0 {
				return nil
			}
			t := now.Add(length)
			return &t
		},
	})
}

type KickCommand struct{ meta }

func (c *KickCommand) Name() string        { return "kick" }
func (c *KickCommand) Description() string { return c.describe("slash.kick") }
func (c *KickCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionKickMembers}
}
func (c *KickCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionKickMembers}
}

func (c *KickCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.kick", discordgo.PermissionKickMembers, c.punishOptions(false)...)
}

func (c *KickCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	return punish(ctx, sc, action{
		typ: storage.PunishmentKick,
		apply: func(api command.API, guildID, userID, reason string, _ time.Duration) error {
			return api.GuildMemberDeleteWithReason(guildID, userID, reason)
		},
	})
}

type WarnCommand struct{ meta }

func (c *WarnCommand) Name() string        { return "warn" }
func (c *WarnCommand) Description() string { return c.describe("slash.warn") }
func (c *WarnCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *WarnCommand) BotPermissions() []int64 { return nil }

func (c *WarnCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.warn", discordgo.PermissionModerateMembers, c.punishOptions(false)...)
}

func (c *WarnCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	return punish(ctx, sc, action{
		typ: storage.PunishmentWarn,
		// a warning only exists as a record
		apply: func(command.API, string, string, string, time.Duration) error { return nil },
	})
}

type MuteCommand struct{ meta }

func (c *MuteCommand) Name() string        { return "mute" }
func (c *MuteCommand) Description() string { return c.describe("slash.mute") }
func (c *MuteCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *MuteCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *MuteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.mute", discordgo.PermissionModerateMembers, c.punishOptions(true)...)
}

func (c *MuteCommand) Autocomplete(ctx context.Context, ac *command.AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	return timeAutocomplete{}.Autocomplete(ctx, ac)
}

func (c *MuteCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	until := func(now time.Time, length time.Duration) *time.Time {
		t := now.Add(length)
		return &t
	}
	return punish(ctx, sc, action{
		typ:           storage.PunishmentMute,
		withTime:      true,
		maxLength:     MaxMute,
		defaultLength: DefaultMute,
		apply: func(api command.API, guildID, userID, _ string, length time.Duration) error {
			return api.GuildMemberTimeout(guildID, userID, until(time.Now(), length))
		},
		expires: until,
		extra: func(now time.Time, length time.Duration) []any {
			return []any{timestamp(now.Add(length), "f")}
		},
	})
}
