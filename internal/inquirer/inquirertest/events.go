package inquirertest

import (
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

var seq atomic.Int64

func nextID(prefix string) string { return fmt.Sprintf("%s%d", prefix, seq.Add(1)) }

// SlashCommand builds an unacknowledged slash command interaction. An empty
// guildID makes it a DM interaction.
func SlashCommand(guildID, channelID, userID string) *discordgo.Interaction {
	i := &discordgo.Interaction{
		ID:        nextID("i"),
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   guildID,
		ChannelID: channelID,
		Data:      discordgo.ApplicationCommandInteractionData{Name: "test"},
	}
	user := &discordgo.User{ID: userID, Username: "user" + userID}
	if guildID != "" {
		i.Member = &discordgo.Member{User: user}
	} else {
		i.User = user
	}
	return i
}

// Click builds a button press on customID by userID.
func Click(customID, userID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:     nextID("c"),
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.ButtonComponent,
		},
	}
}

// Select builds a select-menu choice on customID by userID.
func Select(customID, userID string, values ...string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:     nextID("s"),
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.SelectMenuComponent,
			Values:        values,
		},
	}
}

// Message builds a text message by userID in channelID.
func Message(channelID, userID, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        nextID("u"),
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{ID: userID},
	}
}
