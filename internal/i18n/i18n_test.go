package i18n

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func newBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := New("pt-BR")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestCatalogsDefineTheSameKeys(t *testing.T) {
	b := newBundle(t)
	for _, key := range b.Keys(EnglishUS) {
		if !b.Has(PortugueseBR, key) {
			t.Errorf("pt-BR is missing %q", key)
		}
	}
	for _, key := range b.Keys(PortugueseBR) {
		if !b.Has(EnglishUS, key) {
			t.Errorf("en-US is missing %q", key)
		}
	}
}

func TestForMatchesLocale(t *testing.T) {
	b := newBundle(t)
	tests := map[string]string{
		"en-US": "Total",
		"en-GB": "Total",
		"pt-BR": "Total",
		"ja":    "Total",
		"":      "Total",
	}
	for locale, want := range tests {
		if got := b.For(locale).T("common.total"); got != want {
			t.Errorf("For(%q).T = %q, want %q", locale, got, want)
		}
	}
	if got := b.For("en-US").T("common.next"); got != "Next" {
		t.Errorf("en-US common.next = %q", got)
	}
	if got := b.For("ja").T("common.next"); got != "Próxima" {
		t.Errorf("unsupported locale should fall back to default, got %q", got)
	}
}

func TestMissingKeyReturnsKey(t *testing.T) {
	b := newBundle(t)
	if got := b.For("en-US").T("does.not.exist"); got != "does.not.exist" {
		t.Errorf("got %q", got)
	}
}

func TestArgumentsAndPlurals(t *testing.T) {
	p := newBundle(t).For("en-US")
	if got := p.T("infractions.of", "kyu"); got != "Infractions of kyu" {
		t.Errorf("got %q", got)
	}
	if got := p.T("time.unit.d", 1); got != "1 day" {
		t.Errorf("singular: got %q", got)
	}
	if got := p.T("time.unit.d", 3); got != "3 days" {
		t.Errorf("plural: got %q", got)
	}
	got := p.T("errors.user_missing_permissions", 2, "Ban Members, Kick Members")
	if !strings.Contains(got, "permissions: Ban Members, Kick Members") {
		t.Errorf("got %q", got)
	}
}

func TestForInteraction(t *testing.T) {
	b := newBundle(t)
	p := b.ForInteraction(&discordgo.Interaction{Locale: discordgo.EnglishUS, GuildLocale: ptr(discordgo.PortugueseBR)})
	if p.Tag() != EnglishUS {
		t.Errorf("tag = %v", p.Tag())
	}
	p = b.ForInteraction(&discordgo.Interaction{GuildLocale: ptr(discordgo.EnglishUS)})
	if p.Tag() != EnglishUS {
		t.Errorf("guild locale ignored, tag = %v", p.Tag())
	}
}

func TestLocalizations(t *testing.T) {
	loc := *newBundle(t).Localizations("slash.ban.name")
	if loc[discordgo.PortugueseBR] != "banir" || loc[discordgo.EnglishUS] != "ban" {
		t.Errorf("got %v", loc)
	}
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	if _, err := New("fr-FR"); err == nil {
		t.Fatal("expected error")
	}
}

func ptr[T any](v T) *T { return &v }
