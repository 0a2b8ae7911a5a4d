package command

import "github.com/bwmarrin/discordgo"

// Options indexes slash command options by name.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// NewOptions flattens opts, descending through subcommand groups and
// subcommands.
func NewOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	out := make(Options, len(opts))
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			for k, v := range NewOptions(o.Options) {
				out[k] = v
			}
		default:
			out[o.Name] = o
		}
	}
	return out
}

func (o Options) String(name string) string {
	if v, ok := o[name]; ok {
		if s, ok := v.Value.(string); ok {
			return s
		}
	}
	return ""
}

func (o Options) Bool(name string) bool {
	if v, ok := o[name]; ok {
		if b, ok := v.Value.(bool); ok {
			return b
		}
	}
	return false
}

func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// UserID returns the snowflake of a user option.
func (o Options) UserID(name string) string {
	return o.String(name)
}

// ChannelID returns the snowflake of a channel option.
func (o Options) ChannelID(name string) string {
	return o.String(name)
}

// ResolvedUser looks a user option up in the interaction's resolved data.
func ResolvedUser(data discordgo.ApplicationCommandInteractionData, id string) *discordgo.User {
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id}
}

// ResolvedMember looks a member option up in the interaction's resolved
// data. Resolved members lack their User, so it is filled in.
func ResolvedMember(data discordgo.ApplicationCommandInteractionData, id string) *discordgo.Member {
	if data.Resolved == nil {
		return nil
	}
	m, ok := data.Resolved.Members[id]
	if !ok {
		return nil
	}
	if m.User == nil {
		m.User = ResolvedUser(data, id)
	}
	return m
}
