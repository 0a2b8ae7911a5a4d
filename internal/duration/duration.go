// Package duration implements the <integer><unit> mini-grammar used by
// moderation commands for ban and mute lengths.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Unit is a single-letter measurement unit.
type Unit string

const (
	Second Unit = "s"
	Minute Unit = "m"
	Hour   Unit = "h"
	Day    Unit = "d"
	Week   Unit = "w"
	Month  Unit = "M"
	Year   Unit = "y"
)

// Units lists every supported unit from smallest to largest.
var Units = []Unit{Second, Minute, Hour, Day, Week, Month, Year}

// ErrNotANumber is returned for strings outside the grammar.
var ErrNotANumber = errors.New("duration: not a number")

var grammar = regexp.MustCompile(`^(\d+)([smhdwMy])$`)

// Duration returns the length of one unit, or 0 for an unknown unit.
func (u Unit) Duration() time.Duration {
	switch u {
	case Second:
		return time.Second
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	case Week:
		return 7 * 24 * time.Hour
	case Month:
		return 30 * 24 * time.Hour
	case Year:
		return 365 * 24 * time.Hour
	}
	return 0
}

// Format renders n units in grammar form, e.g. Format(3, Day) == "3d".
func Format(n int64, u Unit) string {
	return strconv.FormatInt(n, 10) + string(u)
}

// Parse converts "<integer><unit>" to a duration. Anything else, including
// values too large for time.Duration, yields ErrNotANumber.
func Parse(s string) (time.Duration, error) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	unit := Unit(m[2]).Duration()
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q overflows", ErrNotANumber, s)
	}
	return time.Duration(n) * unit, nil
}
