// Package showcase runs each prompt primitive from a slash command.
package showcase

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/i18n"
	"github.com/akane-bot/akane/internal/inquirer"
)

const (
	Group    = "showcase"
	Category = "🧪 Showcase"

	// Messages is how many messages ask-messages collects.
	Messages = 2
)

// Commands returns the three showcase commands.
func Commands(b *i18n.Bundle) []command.DiscordCommand {
	m := meta{bundle: b}
	return []command.DiscordCommand{
		&AskButtonCommand{m},
		&AskSelectMenuCommand{m},
		&AskMessagesCommand{m},
	}
}

type meta struct {
	bundle *i18n.Bundle
}

func (meta) Group() string            { return Group }
func (meta) Category() string         { return Category }
func (meta) UserPermissions() []int64 { return nil }
func (meta) BotPermissions() []int64  { return nil }
func (m meta) describe(k string) string {
	return m.bundle.For(command.BaseLocale).T(k + ".description")
}

func (m meta) definition(key string) *discordgo.ApplicationCommand {
	return command.SlashCommand(m.bundle, key,
		command.SlashOption(m.bundle, "slash.option.dm", discordgo.ApplicationCommandOptionBoolean, false))
}

func delivery(sc *command.SlashInteractionContext) inquirer.Delivery {
	if sc.Options().Bool("dm") {
		return inquirer.Private
	}
	return inquirer.Public
}

// timedOut replaces the reply with the timeout notice.
func timedOut(sc *command.SlashInteractionContext) error {
	return sc.ReplyComplex(sc.T("errors.prompt_timeout"), nil, nil)
}

type AskButtonCommand struct{ meta }

func (c *AskButtonCommand) Name() string        { return "ask-button" }
func (c *AskButtonCommand) Description() string { return c.describe("slash.ask_button") }

func (c *AskButtonCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return c.definition("slash.ask_button")
}

func (c *AskButtonCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	if err := sc.Defer(); err != nil {
		return err
	}
	colors := map[string]string{
		"red":   sc.T("showcase.button.red"),
		"green": sc.T("showcase.button.green"),
		"blue":  sc.T("showcase.button.blue"),
	}
	picked, err := inquirer.AskButtons(ctx, sc.Engine, sc.Interaction, inquirer.ButtonOptions[string]{
		Delivery: delivery(sc),
		Message:  inquirer.Message{Content: sc.T("showcase.button.content")},
		Choices: []inquirer.Button[string]{
			{ID: "red", Label: colors["red"], Style: discordgo.DangerButton, Emoji: "💥"},
			{ID: "green", Label: colors["green"], Style: discordgo.SuccessButton},
			{ID: "blue", Label: colors["blue"], Style: discordgo.PrimaryButton},
		},
	})
	if errors.Is(err, inquirer.ErrPromptTimeout) {
		return timedOut(sc)
	}
	if err != nil {
		return err
	}
	return sc.ReplyComplex(sc.T("showcase.button.answered", colors[picked]), nil, nil)
}

type AskSelectMenuCommand struct{ meta }

func (c *AskSelectMenuCommand) Name() string        { return "ask-select-menu" }
func (c *AskSelectMenuCommand) Description() string { return c.describe("slash.ask_select_menu") }

func (c *AskSelectMenuCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return c.definition("slash.ask_select_menu")
}

func (c *AskSelectMenuCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	if err := sc.Defer(); err != nil {
		return err
	}
	fruits := []string{sc.T("showcase.select.apple"), sc.T("showcase.select.banana"), sc.T("showcase.select.cherry")}
	emoji := []string{"🍎", "🍌", "🍒"}
	choices := make([]inquirer.SelectOption[int], len(fruits))
	for i, f := range fruits {
		choices[i] = inquirer.SelectOption[int]{ID: i, Label: f, Emoji: emoji[i]}
	}

	d := delivery(sc)
	picked, err := inquirer.AskSelectMenu(ctx, sc.Engine, sc.Interaction, inquirer.SelectOptions[int]{
		Delivery:            d,
		Message:             inquirer.Message{Content: sc.T("showcase.select.content")},
		Choices:             choices,
		Placeholder:         sc.T("showcase.select.placeholder"),
		SetDisabledWhenDone: true,
	})
	if errors.Is(err, inquirer.ErrPromptTimeout) {
		return timedOut(sc)
	}
	if err != nil {
		return err
	}
	answer := sc.T("showcase.select.answered", fruits[picked])
	if d == inquirer.Public {
		// the disabled menu stays under the answer
		_, err := sc.API.InteractionResponseEdit(sc.Interaction.Interaction, &discordgo.WebhookEdit{Content: &answer})
		return err
	}
	return sc.ReplyComplex(answer, nil, nil)
}

type AskMessagesCommand struct{ meta }

func (c *AskMessagesCommand) Name() string        { return "ask-messages" }
func (c *AskMessagesCommand) Description() string { return c.describe("slash.ask_messages") }

// BotPermissions covers deleting the collected answers.
func (c *AskMessagesCommand) BotPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func (c *AskMessagesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return c.definition("slash.ask_messages")
}

func (c *AskMessagesCommand) Run(ctx context.Context, sc *command.SlashInteractionContext) error {
	if err := sc.Defer(); err != nil {
		return err
	}
	msgs, err := inquirer.AskMessages(ctx, sc.Engine, sc.Interaction, inquirer.MessageOptions{
		Delivery:        delivery(sc),
		Message:         inquirer.Message{Content: sc.T("showcase.messages.content", Messages)},
		MaxMessages:     Messages,
		DeleteRetrieved: true,
		DeleteQuestion:  true,
	})
	if errors.Is(err, inquirer.ErrPromptTimeout) {
		return sc.ReplyComplex(sc.T("showcase.messages.partial", len(msgs)), nil, nil)
	}
	if err != nil {
		return err
	}
	texts := make([]string, len(msgs))
	for i, m := range msgs {
		texts[i] = m.Content
	}
	return sc.ReplyComplex(sc.T("showcase.messages.answered", len(msgs), strings.Join(texts, ", ")), nil, nil)
}
