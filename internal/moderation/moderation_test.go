package moderation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/storage"
)

func TestIsTrustedMediaURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://i.imgur.com/abc.png", true},
		{"https://cdn.discordapp.com/attachments/1/2/proof.JPG", true},
		{"https://media3.giphy.com/media/x/giphy.gif", true},
		{"https://media.discordapp.net/attachments/1/2/clip.mp4?ex=1", true},
		{"http://i.imgur.com/abc.png", false},
		{"https://imgur.com/abc.png", false},
		{"https://i.imgur.com/abc.exe", false},
		{"https://evil.com/i.imgur.com/abc.png", false},
		{"https://i.imgur.com.evil.com/abc.png", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		if got := IsTrustedMediaURL(tt.url); got != tt.want {
			t.Errorf("IsTrustedMediaURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestParseProofs(t *testing.T) {
	got, err := ParseProofs(" https://i.imgur.com/a.png, https://i.ibb.co/b.webp ,")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != "https://i.ibb.co/b.webp" {
		t.Fatalf("ParseProofs = %v", got)
	}
	if _, err := ParseProofs("https://i.imgur.com/a.png,https://example.com/b.png"); !errors.Is(err, ErrUntrustedURL) {
		t.Fatalf("err = %v, want ErrUntrustedURL", err)
	}
	if got, err := ParseProofs("  "); err != nil || got != nil {
		t.Fatalf("empty proofs = %v, %v", got, err)
	}
}

func member(id string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id}, Roles: roles}
}

func TestCheckHierarchy(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "admin", Position: 10},
		{ID: "bot", Position: 8},
		{ID: "mod", Position: 5},
		{ID: "member", Position: 1},
	}
	bot := member("bot", "bot")
	tests := []struct {
		name   string
		actor  *discordgo.Member
		target *discordgo.Member
		want   error
	}{
		{"ok", member("m", "mod"), member("t", "member"), nil},
		{"self", member("m", "mod"), member("m", "mod"), ErrSelfPunish},
		{"bot outranked", member("a", "admin"), member("t", "admin"), ErrBotOutranked},
		{"actor outranked", member("m", "mod"), member("t", "mod", "member"), ErrActorOutranked},
		{"equal ranks", member("m", "mod"), member("t", "mod"), ErrActorOutranked},
		{"owner acts on anyone below the bot", member("owner"), member("t", "mod"), nil},
		{"nobody acts on the owner", member("a", "admin"), member("owner"), ErrBotOutranked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckHierarchy(bot, tt.actor, tt.target, roles, "owner")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

type keys struct{}

func (keys) T(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return key + " " + strings.TrimSpace(fmt.Sprintln(args...))
}

func TestNotification(t *testing.T) {
	e := Notification(keys{}, storage.PunishmentBan, "Guild", "mod#1", "")
	if !strings.HasPrefix(e.Title, "moderation.ban.notification.title") {
		t.Fatalf("title = %q", e.Title)
	}
	if !strings.Contains(e.Description, "common.no_reason") {
		t.Fatalf("empty reason not replaced: %q", e.Description)
	}
	if e.Footer == nil || e.Footer.Text != "common.contest_footer" {
		t.Fatalf("footer = %+v", e.Footer)
	}
}

func TestOutcome(t *testing.T) {
	if got := Outcome(storage.PunishmentKick, true, true); got != "moderation.kick.success_silent" {
		t.Fatalf("silent = %q", got)
	}
	if got := Outcome(storage.PunishmentWarn, false, true); got != "moderation.warn.success_dm_failed" {
		t.Fatalf("dm failed = %q", got)
	}
	if got := Outcome(storage.PunishmentMute, false, false); got != "moderation.mute.success" {
		t.Fatalf("success = %q", got)
	}
	if ErrorKey(fmt.Errorf("wrap: %w", ErrBotOutranked)) != "errors.bot_role_inferior" {
		t.Fatal("ErrorKey did not unwrap")
	}
}
