// Package discipline holds the moderation slash commands: ban, kick, warn,
// mute, their reverts and the infractions history.
package discipline

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/internal/duration"
	"github.com/akane-bot/akane/internal/i18n"
)

const (
	Group    = "moderation"
	Category = "🛡️ Moderation"

	// MaxMute is the longest communication timeout Discord accepts.
	MaxMute = 28 * 24 * time.Hour
	// DefaultMute applies when /mute is given no time.
	DefaultMute = time.Hour
)

// Commands returns every moderation command, defined against b.
func Commands(b *i18n.Bundle) []command.DiscordCommand {
	m := meta{bundle: b}
	return []command.DiscordCommand{
		&BanCommand{m},
		&UnbanCommand{m},
		&KickCommand{m},
		&WarnCommand{m},
		&MuteCommand{m},
		&UnmuteCommand{m},
		&InfractionsCommand{m},
	}
}

type meta struct {
	bundle *i18n.Bundle
}

func (meta) Group() string    { return Group }
func (meta) Category() string { return Category }

func (m meta) describe(key string) string {
	return m.bundle.For(command.BaseLocale).T(key + ".description")
}

func (m meta) userOption() *discordgo.ApplicationCommandOption {
	return command.SlashOption(m.bundle, "slash.option.user", discordgo.ApplicationCommandOptionUser, true)
}

func (m meta) reasonOption() *discordgo.ApplicationCommandOption {
	o := command.SlashOption(m.bundle, "slash.option.reason", discordgo.ApplicationCommandOptionString, false)
	o.MaxLength = 512
	return o
}

// punishOptions are shared by every command that records a punishment.
func (m meta) punishOptions(withTime bool) []*discordgo.ApplicationCommandOption {
	opts := []*discordgo.ApplicationCommandOption{
		m.userOption(),
		m.reasonOption(),
		command.SlashOption(m.bundle, "slash.option.proofs", discordgo.ApplicationCommandOptionString, false),
		command.SlashOption(m.bundle, "slash.option.silent", discordgo.ApplicationCommandOptionBoolean, false),
	}
	if withTime {
		t := command.SlashOption(m.bundle, "slash.option.time", discordgo.ApplicationCommandOptionString, false)
		t.Autocomplete = true
		opts = append(opts, t)
	}
	return opts
}

// timeAutocomplete answers the time option of ban and mute.
type timeAutocomplete struct{}

func (timeAutocomplete) Autocomplete(_ context.Context, c *command.AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	f := c.Focused()
	if f == nil || f.Name != "time" {
		return nil, nil
	}
	v, _ := f.Value.(string)
	return duration.Autocomplete(v, c.Printer), nil
}

// parseLength reads the time option. A missing value or the reset choice is zero;
// ok is false for the other autocomplete placeholders and anything outside
// the grammar.
func parseLength(v string) (d time.Duration, ok bool) {
	switch v {
	case "", duration.ValueReset:
		return 0, true
	}
	if duration.IsSentinel(v) {
		return 0, false
	}
	d, err := duration.Parse(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

func restCode(err error) int {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil {
		return rest.Message.Code
	}
	return 0
}

func timestamp(t time.Time, style string) string {
	return "<t:" + strconv.FormatInt(t.Unix(), 10) + ":" + style + ">"
}

// tag renders a user the way Discord shows them now that most accounts have
// no discriminator.
func tag(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	if u.Username == "" {
		return "<@" + u.ID + ">"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
