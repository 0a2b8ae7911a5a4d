package inquirer

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"github.com/rivo/uniseg"
)

// ID is the set of choice identifier types. The caller receives back the
// exact value it offered, with its type.
type ID interface {
	~string | ~int | ~int64 | ~bool
}

const (
	maxCustomIDLength = 100
	maxButtons        = 25
	buttonsPerRow     = 5
	maxSelectOptions  = 25
)

func encodeID[T ID](id T) string { return fmt.Sprint(id) }

// validateIDs checks that ids are non-empty and unique once encoded and
// that every custom id fits Discord's limit.
func validateIDs(encoded []string, max int, prefixLen int) error {
	if len(encoded) == 0 {
		return ErrNoChoices
	}
	if len(encoded) > max {
		return fmt.Errorf("%w: %d choices, at most %d", ErrInvalidChoice, len(encoded), max)
	}
	seen := make(map[string]struct{}, len(encoded))
	for _, id := range encoded {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateChoice, id)
		}
		seen[id] = struct{}{}
		if prefixLen+len(id) > maxCustomIDLength {
			return fmt.Errorf("%w: id %q too long", ErrInvalidChoice, id)
		}
	}
	return nil
}

// lookup maps an encoded answer back to the offered value.
func lookup[T ID](ids []T, encoded string) (T, bool) {
	for _, id := range ids {
		if encodeID(id) == encoded {
			return id, true
		}
	}
	var zero T
	return zero, false
}

var customEmoji = regexp.MustCompile(`^<(a?):([A-Za-z0-9_]+):(\d+)>$`)

// ParseEmoji turns a unicode emoji or a <:name:id> mention into a component
// emoji. Empty input yields nil.
func ParseEmoji(s string) *discordgo.ComponentEmoji {
	if s == "" {
		return nil
	}
	if m := customEmoji.FindStringSubmatch(s); m != nil {
		return &discordgo.ComponentEmoji{Name: m[2], ID: m[3], Animated: m[1] == "a"}
	}
	return &discordgo.ComponentEmoji{Name: s}
}

// combining enclosing keycap, as in 1️⃣
const keycap = '\u20E3'

// IsEmoji reports whether s is a <:name:id> mention or a single unicode
// emoji, which is what Discord accepts as a component emoji.
func IsEmoji(s string) bool {
	if customEmoji.MatchString(s) {
		return true
	}
	if uniseg.GraphemeClusterCount(s) != 1 {
		return false
	}
	for _, r := range s {
		if unicode.Is(unicode.So, r) || r == keycap {
			return true
		}
	}
	return false
}
