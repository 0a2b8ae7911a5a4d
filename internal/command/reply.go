package command

import (
	"github.com/bwmarrin/discordgo"
)

const EmbedColor = 0xb01e66

// --- Interaction responses ---

// Defer acknowledges the interaction ephemerally without a reply yet. It is
// a no-op when something already answered it.
func (b *Base) Defer() error {
	if b.Interaction.Acknowledged() {
		return nil
	}
	err := b.API.InteractionRespond(b.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		return err
	}
	b.Interaction.MarkAcknowledged()
	return nil
}

// Reply answers ephemerally with content: as the initial response when
// nothing answered yet, otherwise by editing the existing reply.
func (b *Base) Reply(content string) error {
	return b.reply(content, nil, nil)
}

// ReplyEmbed is Reply with a single embed and no text.
func (b *Base) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return b.reply("", []*discordgo.MessageEmbed{embed}, nil)
}

// ReplyComplex replaces the whole reply.
func (b *Base) ReplyComplex(content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return b.reply(content, embeds, components)
}

func (b *Base) reply(content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	if b.Interaction.Acknowledged() {
		_, err := b.API.InteractionResponseEdit(b.Interaction.Interaction, &discordgo.WebhookEdit{
			Content:    &content,
			Embeds:     &embeds,
			Components: &components,
		})
		return err
	}
	err := b.API.InteractionRespond(b.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     embeds,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return err
	}
	b.Interaction.MarkAcknowledged()
	return nil
}

// RespondChoices answers an autocomplete interaction.
func (b *Base) RespondChoices(choices []*discordgo.ApplicationCommandOptionChoice) error {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	return b.API.InteractionRespond(b.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// --- Channel messages (non-interaction) ---

// MessageEmbed sends an embed to a channel.
func (b *Base) MessageEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return b.API.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}
