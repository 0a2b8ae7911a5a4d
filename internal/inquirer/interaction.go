package inquirer

import (
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// Delivery selects where a prompt renders.
type Delivery string

const (
	// Public renders by editing the reply to the triggering interaction.
	Public Delivery = "guild"
	// Private renders as a new message in the actor's DM channel.
	Private Delivery = "dm"
)

func (d Delivery) String() string { return string(d) }

// Interaction wraps the triggering interaction and tracks whether it has
// been acknowledged, so prompts know whether a reply exists to edit.
type Interaction struct {
	*discordgo.Interaction
	acked atomic.Bool
}

func NewInteraction(i *discordgo.Interaction) *Interaction {
	return &Interaction{Interaction: i}
}

// Actor is the user who triggered the interaction.
func (i *Interaction) Actor() *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// ActorID returns the triggering user's id, or "" when unknown.
func (i *Interaction) ActorID() string {
	if u := i.Actor(); u != nil {
		return u.ID
	}
	return ""
}

func (i *Interaction) InGuild() bool { return i.GuildID != "" }

func (i *Interaction) Acknowledged() bool { return i.acked.Load() }

// MarkAcknowledged records that an initial response was sent by someone
// other than the engine.
func (i *Interaction) MarkAcknowledged() { i.acked.Store(true) }
