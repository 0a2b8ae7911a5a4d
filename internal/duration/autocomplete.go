package duration

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Values returned by Autocomplete that are not durations.
const (
	ValueReset             = "RESET"
	ValueExceededMaxLength = "EXCEEDED_MAX_LENGTH"
	ValueHelp              = "HELP"
	ValueEmpty             = "EMPTY"
)

// MaxInputLength caps what a user may type into a duration option.
const MaxInputLength = 6

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Translator resolves localized strings by key.
type Translator interface {
	T(key string, args ...any) string
}

// IsSentinel reports whether v is one of the non-duration autocomplete values.
func IsSentinel(v string) bool {
	switch v {
	case ValueReset, ValueExceededMaxLength, ValueHelp, ValueEmpty:
		return true
	}
	return false
}

// UnitName returns the localized, pluralized name of u for n.
func UnitName(tr Translator, u Unit, n int64) string {
	return tr.T("time.unit."+string(u), n)
}

// Autocomplete builds the choices shown while a user types a duration.
func Autocomplete(value string, tr Translator) []*discordgo.ApplicationCommandOptionChoice {
	switch {
	case len(value) > MaxInputLength:
		return []*discordgo.ApplicationCommandOptionChoice{{
			Name:  tr.T("errors.time_exceeds_max_length", len(value), MaxInputLength),
			Value: ValueExceededMaxLength,
		}}
	case value == "0":
		return []*discordgo.ApplicationCommandOptionChoice{{
			Name:  tr.T("common.autocomplete_reset"),
			Value: ValueReset,
		}}
	case grammar.MatchString(value):
		return []*discordgo.ApplicationCommandOptionChoice{{Name: value, Value: value}}
	case digitsOnly.MatchString(value):
		n, _ := strconv.ParseInt(value, 10, 64)
		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Units))
		for _, u := range Units {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  Format(n, u) + " (" + UnitName(tr, u, n) + ")",
				Value: Format(n, u),
			})
		}
		return choices
	case value == "":
		names := make([]string, 0, len(Units))
		for _, u := range Units {
			names = append(names, string(u)+" = "+UnitName(tr, u, 1))
		}
		return []*discordgo.ApplicationCommandOptionChoice{{
			Name:  tr.T("common.autocomplete_time_help", strings.Join(names, ", ")),
			Value: ValueEmpty,
		}}
	}
	return []*discordgo.ApplicationCommandOptionChoice{{
		Name:  tr.T("common.autocomplete_invalid_time"),
		Value: ValueHelp,
	}}
}
