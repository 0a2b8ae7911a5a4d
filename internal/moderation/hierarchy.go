package moderation

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrSelfPunish is returned when the actor targets themselves.
	ErrSelfPunish = errors.New("moderation: actor targets themselves")
	// ErrBotOutranked is returned when the target's top role is not below
	// the bot's.
	ErrBotOutranked = errors.New("moderation: target outranks the bot")
	// ErrActorOutranked is returned when the target's top role is not below
	// the actor's.
	ErrActorOutranked = errors.New("moderation: target outranks the actor")
)

// HighestPosition is the position of the member's top role, 0 for @everyone
// only.
func HighestPosition(m *discordgo.Member, roles []*discordgo.Role) int {
	byID := make(map[string]int, len(roles))
	for _, r := range roles {
		byID[r.ID] = r.Position
	}
	top := 0
	for _, id := range m.Roles {
		if p, ok := byID[id]; ok && p > top {
			top = p
		}
	}
	return top
}

// Outranks reports whether member may act on target. The guild owner
// outranks everyone and is outranked by no one.
func Outranks(member, target *discordgo.Member, roles []*discordgo.Role, ownerID string) bool {
	if target.User != nil && target.User.ID == ownerID {
		return false
	}
	if member.User != nil && member.User.ID == ownerID {
		return true
	}
	return HighestPosition(member, roles) > HighestPosition(target, roles)
}

// CheckHierarchy runs the checks every punishment needs, in order: the
// actor is not the target, then the bot outranks the target, then the actor
// does.
func CheckHierarchy(bot, actor, target *discordgo.Member, roles []*discordgo.Role, ownerID string) error {
	if actor.User.ID == target.User.ID {
		return ErrSelfPunish
	}
	if !Outranks(bot, target, roles, ownerID) {
		return ErrBotOutranked
	}
	if !Outranks(actor, target, roles, ownerID) {
		return ErrActorOutranked
	}
	return nil
}

// ErrorKey is the localization key for a hierarchy error.
func ErrorKey(err error) string {
	switch {
	case errors.Is(err, ErrSelfPunish):
		return "errors.self_punish"
	case errors.Is(err, ErrBotOutranked):
		return "errors.bot_role_inferior"
	case errors.Is(err, ErrActorOutranked):
		return "errors.target_role_higher"
	case errors.Is(err, ErrUntrustedURL):
		return "errors.not_trusted_url"
	}
	return "errors.unknown"
}
