package discipline

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/storage"
)

// revert lifts the active punishments of typ and records the lift as its own
// punishment entry.
func revert(ctx context.Context, c *command.SlashInteractionContext, targetID string, typ, revertType storage.PunishmentType, reason string) error {
	now := time.Now()
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
	n, err := c.Storage.RevertActive(ctx, guild, target, typ, now)
	if err != nil {
		return err
	}
	_, err = c.Storage.CreatePunishment(ctx, &storage.Punishment{
		Type:       revertType,
		GuildID:    guild.ID,
		UserID:     target.ID,
		PunisherID: punisher.ID,
		Reason:     reason,
		CreatedAt:  now,
	})
	if err != nil {
		return err
	}
	c.Logger.Info("Punishment reverted",
		zap.String("type", string(revertType)),
		zap.String("guild", guild.DiscordID),
		zap.String("target", targetID),
		zap.Int64("lifted", n))
	return nil
}

type UnbanCommand struct{ meta }

func (c *UnbanCommand) Name() string        { return "unban" }
func (c *UnbanCommand) Description() string { return c.describe("slash.unban") }
func (c *UnbanCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}
func (c *UnbanCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}

func (c *UnbanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.unban", discordgo.PermissionBanMembers, c.userOption(), c.reasonOption())
}

func (c *UnbanCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	if err := sc.Defer(); err != nil {
		return err
	}
	opts := sc.Options()
	guildID := sc.Interaction.GuildID
	targetID := opts.UserID("user")
	user := command.ResolvedUser(sc.Interaction.ApplicationCommandData(), targetID)

	if _, err := sc.API.GuildBan(guildID, targetID); err != nil {
		if restCode(err) == discordgo.ErrCodeUnknownBan {
			return sc.Reply(sc.T("moderation.unban.not_banned", tag(user)))
		}
		return fmt.Errorf("fetch ban %s: %w", targetID, err)
	}
	if err := sc.API.GuildBanDelete(guildID, targetID); err != nil {
		return fmt.Errorf("unban %s: %w", targetID, err)
	}
	if err := revert(ctx, sc, targetID, storage.PunishmentBan, storage.PunishmentRevertBan, opts.String("reason")); err != nil {
		return err
	}
	return sc.Reply(sc.T("moderation.unban.success", tag(user)))
}

type UnmuteCommand struct{ meta }

func (c *UnmuteCommand) Name() string        { return "unmute" }
func (c *UnmuteCommand) Description() string { return c.describe("slash.unmute") }
func (c *UnmuteCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *UnmuteCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}

func (c *UnmuteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.unmute", discordgo.PermissionModerateMembers, c.userOption(), c.reasonOption())
}

func (c *UnmuteCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	if err := sc.Defer(); err != nil {
		return err
	}
	opts := sc.Options()
	guildID := sc.Interaction.GuildID
	targetID := opts.UserID("user")

	member, err := sc.API.GuildMember(guildID, targetID)
	if err != nil {
		if restCode(err) == discordgo.ErrCodeUnknownMember {
			return sc.Reply(sc.T("errors.target_not_member"))
		}
		return fmt.Errorf("fetch member %s: %w", targetID, err)
	}
	if member.User == nil {
		member.User = command.ResolvedUser(sc.Interaction.ApplicationCommandData(), targetID)
	}
	until := member.CommunicationDisabledUntil
	if until == nil || !until.After(time.Now()) {
		return sc.Reply(sc.T("moderation.unmute.not_muted", tag(member.User)))
	}
	if err := sc.API.GuildMemberTimeout(guildID, targetID, nil); err != nil {
		return fmt.Errorf("unmute %s: %w", targetID, err)
	}
	if err := revert(ctx, sc, targetID, storage.PunishmentMute, storage.PunishmentRevertMute, opts.String("reason")); err != nil {
		return err
	}
	return sc.Reply(sc.T("moderation.unmute.success", tag(member.User)))
}
