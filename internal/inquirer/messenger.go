package inquirer

import "github.com/bwmarrin/discordgo"

// Messenger is the slice of the Discord REST API the prompt engine needs.
type Messenger interface {
	Channel(channelID string) (*discordgo.Channel, error)
	UserChannelCreate(userID string) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string) error
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit) (*discordgo.Message, error)
}
