// Package i18n holds the bot's string catalogs and resolves a printer per
// Discord locale, falling back to the default locale and then to the key.
package i18n

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	EnglishUS    = language.AmericanEnglish
	PortugueseBR = language.BrazilianPortuguese
)

// Bundle is an immutable set of catalogs built once at startup.
type Bundle struct {
	builder   *catalog.Builder
	keys      map[language.Tag]map[string]struct{}
	supported []language.Tag
	matcher   language.Matcher
	def       language.Tag
}

// New builds the bundle with every known locale. defaultLocale must be one of
// them.
func New(defaultLocale string) (*Bundle, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	sources := map[language.Tag]map[string]any{
		EnglishUS:    enUS,
		PortugueseBR: ptBR,
	}
	if _, ok := sources[def]; !ok {
		return nil, fmt.Errorf("default locale %q has no catalog", defaultLocale)
	}

	b := &Bundle{
		builder: catalog.NewBuilder(catalog.Fallback(def)),
		keys:    make(map[language.Tag]map[string]struct{}, len(sources)),
		def:     def,
	}

	// default first so the matcher falls back to it on no confidence
	b.supported = append(b.supported, def)
	for tag := range sources {
		if tag != def {
			b.supported = append(b.supported, tag)
		}
	}
	b.matcher = language.NewMatcher(b.supported)

	for tag, entries := range sources {
		keys := make(map[string]struct{}, len(entries))
		for key, v := range entries {
			switch msg := v.(type) {
			case string:
				err = b.builder.SetString(tag, key, msg)
			case catalog.Message:
				err = b.builder.Set(tag, key, msg)
			default:
				err = fmt.Errorf("unsupported message type %T", v)
			}
			if err != nil {
				return nil, fmt.Errorf("catalog %s key %q: %w", tag, key, err)
			}
			keys[key] = struct{}{}
		}
		b.keys[tag] = keys
	}
	return b, nil
}

// Default returns the printer for the default locale.
func (b *Bundle) Default() *Printer { return b.printer(b.def) }

// For resolves the closest supported locale for a BCP 47 / Discord locale.
func (b *Bundle) For(locale string) *Printer {
	if locale == "" {
		return b.Default()
	}
	t, err := language.Parse(locale)
	if err != nil {
		return b.Default()
	}
	_, idx, conf := b.matcher.Match(t)
	if conf == language.No {
		return b.Default()
	}
	return b.printer(b.supported[idx])
}

// ForInteraction prefers the user's client locale, then the guild's.
func (b *Bundle) ForInteraction(i *discordgo.Interaction) *Printer {
	if i == nil {
		return b.Default()
	}
	if i.Locale != "" {
		return b.For(string(i.Locale))
	}
	if i.GuildLocale != nil {
		return b.For(string(*i.GuildLocale))
	}
	return b.Default()
}

// Has reports whether locale defines key without falling back.
func (b *Bundle) Has(locale language.Tag, key string) bool {
	_, ok := b.keys[locale][key]
	return ok
}

// Keys lists the keys defined for locale.
func (b *Bundle) Keys(locale language.Tag) []string {
	out := make([]string, 0, len(b.keys[locale]))
	for k := range b.keys[locale] {
		out = append(out, k)
	}
	return out
}

// Localizations returns the per-locale rendering of key in the shape slash
// command definitions expect.
func (b *Bundle) Localizations(key string) *map[discordgo.Locale]string {
	out := make(map[discordgo.Locale]string, len(b.supported))
	for _, tag := range b.supported {
		if b.Has(tag, key) {
			out[discordgo.Locale(tag.String())] = b.printer(tag).T(key)
		}
	}
	return &out
}

func (b *Bundle) printer(tag language.Tag) *Printer {
	return &Printer{
		tag:    tag,
		bundle: b,
		p:      message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

// Printer renders keys for a single locale.
type Printer struct {
	tag    language.Tag
	bundle *Bundle
	p      *message.Printer
}

// Tag is the resolved locale.
func (p *Printer) Tag() language.Tag { return p.tag }

// T renders key with args. A key missing in this locale is rendered from the
// default locale; a key missing everywhere is returned as-is.
func (p *Printer) T(key string, args ...any) string {
	if p.bundle.Has(p.tag, key) {
		return p.p.Sprintf(key, args...)
	}
	if p.tag != p.bundle.def && p.bundle.Has(p.bundle.def, key) {
		return p.bundle.Default().p.Sprintf(key, args...)
	}
	return key
}
