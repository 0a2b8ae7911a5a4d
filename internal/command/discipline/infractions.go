package discipline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/moderation"
	"github.com/akane-bot/akane/internal/storage"
)

// PageSize is how many infractions one page lists.
const PageSize = 5

const reasonPreview = 52

var typeEmoji = map[storage.PunishmentType]string{
	storage.PunishmentBan:        "🔨",
	storage.PunishmentKick:       "🚪",
	storage.PunishmentWarn:       "📰",
	storage.PunishmentMute:       "🔇",
	storage.PunishmentRevertBan:  "🔙",
	storage.PunishmentRevertMute: "🔙",
}

type InfractionsCommand struct{ meta }

func (c *InfractionsCommand) Name() string        { return "infractions" }
func (c *InfractionsCommand) Description() string { return c.describe("slash.infractions") }
func (c *InfractionsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionModerateMembers}
}
func (c *InfractionsCommand) BotPermissions() []int64 { return nil }

func (c *InfractionsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return command.GuildCommand(c.bundle, "slash.infractions", discordgo.PermissionModerateMembers, c.userOption())
}

func (c *InfractionsCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	if err := sc.Defer(); err != nil {
		return err
	}
	targetID := sc.Options().UserID("user")
	user := command.ResolvedUser(sc.Interaction.ApplicationCommandData(), targetID)

	list, err := sc.Storage.ListPunishments(ctx, sc.Interaction.GuildID, targetID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return sc.Reply(sc.T("infractions.none"))
	}

	pages := Pages(sc.Printer, user, list, time.Now())
	if len(pages) == 1 {
		return sc.ReplyEmbed(pages[0])
	}
	return paginate(ctx, sc, pages)
}

// paginate shows pages one at a time behind previous/next buttons until the
// prompt times out, then leaves the current page without buttons.
func paginate(ctx context.Context, sc *command.SlashInteractionContext, pages []*discordgo.MessageEmbed) error {
	page := 0
	for {
		dir, err := inquirer.AskButtons(ctx, sc.Engine, sc.Interaction, inquirer.ButtonOptions[int]{
			Delivery: inquirer.Public,
			Message: inquirer.Message{
				Content: sc.T("common.page", page+1, len(pages)),
				Embeds:  []*discordgo.MessageEmbed{pages[page]},
			},
			Choices: []inquirer.Button[int]{
				{ID: -1, Label: sc.T("common.previous"), Emoji: "⬅️"},
				{ID: 1, Label: sc.T("common.next"), Emoji: "➡️"},
			},
		})
		if errors.Is(err, inquirer.ErrPromptTimeout) {
			return sc.ReplyComplex(sc.T("infractions.prompt_closed"), []*discordgo.MessageEmbed{pages[page]}, nil)
		}
		if err != nil {
			return err
		}
		page = (page + dir + len(pages)) % len(pages)
	}
}

// Pages renders list, newest first, PageSize entries per embed. Every page
// carries the 24 hour, 7 day and total counts.
func Pages(tr moderation.Translator, user *discordgo.User, list []storage.Punishment, now time.Time) []*discordgo.MessageEmbed {
	var day, week int
	for _, p := range list {
		if p.CreatedAt.After(now.Add(-24 * time.Hour)) {
			day++
		}
		if p.CreatedAt.After(now.Add(-7 * 24 * time.Hour)) {
			week++
		}
	}

	var pages []*discordgo.MessageEmbed
	for start := 0; start < len(list); start += PageSize {
		end := min(start+PageSize, len(list))
		lines := make([]string, 0, end-start)
		for _, p := range list[start:end] {
			lines = append(lines, entry(tr, p))
		}

		e := embed.NewEmbed().
			SetColor(moderation.NotificationColor).
			SetAuthor(tr.T("infractions.of", tag(user)), user.AvatarURL("")).
			SetDescription(strings.Join(lines, "\n\n")+"\n\u200b").
			AddField(tr.T("common.last_24_hours"), tr.T("infractions.count", day)).
			AddField(tr.T("common.last_7_days"), tr.T("infractions.count", week)).
			AddField(tr.T("common.total"), tr.T("infractions.count", len(list))).
			InlineAllFields()
		pages = append(pages, e.MessageEmbed)
	}
	return pages
}

func entry(tr moderation.Translator, p storage.Punishment) string {
	reason := p.Reason
	if reason == "" {
		reason = tr.T("common.no_reason")
	} else if r := []rune(reason); len(r) > reasonPreview {
		reason = string(r[:reasonPreview]) + "..."
	}
	when := timestamp(p.CreatedAt, "d")
	if p.RevertedAt != nil {
		when += " " + tr.T("infractions.reverted")
	}
	if p.ExpiresAt != nil {
		when += " · " + tr.T("common.expires") + " " + timestamp(*p.ExpiresAt, "R")
	}
	if len(p.Proofs) > 0 {
		reason += "\n" + tr.T("common.proofs") + ": " + strings.Join(p.Proofs, " ")
	}
	return typeEmoji[p.Type] + " " + tr.T("infractions.entry",
		p.ID, tr.T("infractions.type."+string(p.Type)), "<@"+p.PunisherDiscordID+">", when, reason)
}
