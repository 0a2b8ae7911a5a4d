package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Storage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRebind(t *testing.T) {
	s := &Storage{dialect: Postgres}
	got := s.rebind("SELECT a FROM t WHERE b = ? AND c = ?")
	if got != "SELECT a FROM t WHERE b = $1 AND c = $2" {
		t.Errorf("got %q", got)
	}
	s.dialect = SQLite
	if got := s.rebind("x = ?"); got != "x = ?" {
		t.Errorf("sqlite should not rebind, got %q", got)
	}
}

func TestDialectFor(t *testing.T) {
	if DialectFor("postgres://u@h/db") != Postgres || DialectFor("postgresql://h/db") != Postgres {
		t.Error("postgres urls not detected")
	}
	if DialectFor("akane.db") != SQLite {
		t.Error("file path should be sqlite")
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g1, err := s.UpsertGuild(ctx, "100")
	if err != nil {
		t.Fatalf("upsert guild: %v", err)
	}
	g2, err := s.UpsertGuild(ctx, "100")
	if err != nil {
		t.Fatalf("upsert guild again: %v", err)
	}
	if g1.ID != g2.ID {
		t.Errorf("guild ids differ: %s vs %s", g1.ID, g2.ID)
	}

	u1, err := s.UpsertUser(ctx, "200", "pt-BR", g1)
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	u2, err := s.UpsertUser(ctx, "200", "", g1)
	if err != nil {
		t.Fatalf("upsert user again: %v", err)
	}
	if u1.ID != u2.ID || u2.Locale != "pt-BR" {
		t.Errorf("user not reused: %+v vs %+v", u1, u2)
	}

	members, err := s.GuildMembers(ctx, "100")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0] != "200" {
		t.Errorf("members = %v", members)
	}
}

func seedPunishment(t *testing.T, s *Storage, typ PunishmentType, created time.Time, expires *time.Time) *Punishment {
	t.Helper()
	ctx := context.Background()
	g, err := s.UpsertGuild(ctx, "g")
	if err != nil {
		t.Fatal(err)
	}
	target, err := s.UpsertUser(ctx, "target", "", g)
	if err != nil {
		t.Fatal(err)
	}
	mod, err := s.UpsertUser(ctx, "mod", "", g)
	if err != nil {
		t.Fatal(err)
	}
	p := &Punishment{
		Type:       typ,
		GuildID:    g.ID,
		UserID:     target.ID,
		PunisherID: mod.ID,
		Reason:     "spam",
		Proofs:     []string{"https://i.imgur.com/a.png"},
		ExpiresAt:  expires,
		CreatedAt:  created,
	}
	if _, err := s.CreatePunishment(ctx, p); err != nil {
		t.Fatalf("create punishment: %v", err)
	}
	return p
}

func TestListPunishmentsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	seedPunishment(t, s, PunishmentWarn, base, nil)
	seedPunishment(t, s, PunishmentKick, base.Add(time.Minute), nil)
	seedPunishment(t, s, PunishmentBan, base.Add(2*time.Minute), nil)

	got, err := s.ListPunishments(context.Background(), "g", "target")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d punishments, want 3", len(got))
	}
	want := []PunishmentType{PunishmentBan, PunishmentKick, PunishmentWarn}
	for i, p := range got {
		if p.Type != want[i] {
			t.Errorf("[%d] type = %s, want %s", i, p.Type, want[i])
		}
	}
	first := got[0]
	if first.PunisherDiscordID != "mod" || first.UserDiscordID != "target" || first.GuildDiscordID != "g" {
		t.Errorf("discord ids not joined: %+v", first)
	}
	if first.Reason != "spam" || len(first.Proofs) != 1 {
		t.Errorf("reason/proofs not stored: %+v", first)
	}
	if !first.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("created_at = %v", first.CreatedAt)
	}
}

func TestExpiredBansAndRevert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	expired := seedPunishment(t, s, PunishmentBan, now.Add(-time.Hour), &past)
	seedPunishment(t, s, PunishmentBan, now.Add(-time.Hour), &future)
	seedPunishment(t, s, PunishmentBan, now.Add(-time.Hour), nil)
	seedPunishment(t, s, PunishmentMute, now.Add(-time.Hour), &past)

	got, err := s.ExpiredBans(ctx, now)
	if err != nil {
		t.Fatalf("expired: %v", err)
	}
	if len(got) != 1 || got[0].ID != expired.ID {
		t.Fatalf("expired bans = %+v, want only #%d", got, expired.ID)
	}

	if err := s.MarkReverted(ctx, expired.ID, now); err != nil {
		t.Fatalf("mark reverted: %v", err)
	}
	if err := s.MarkReverted(ctx, expired.ID, now); !errors.Is(err, ErrNotFound) {
		t.Errorf("second revert err = %v, want ErrNotFound", err)
	}

	got, err = s.ExpiredBans(ctx, now)
	if err != nil {
		t.Fatalf("expired: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("reverted ban returned again: %+v", got)
	}
}

func TestRevertActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPunishment(t, s, PunishmentMute, time.Now(), nil)
	seedPunishment(t, s, PunishmentMute, time.Now(), nil)
	seedPunishment(t, s, PunishmentWarn, time.Now(), nil)

	g, _ := s.UpsertGuild(ctx, "g")
	u, _ := s.UpsertUser(ctx, "target", "", g)
	n, err := s.RevertActive(ctx, g, u, PunishmentMute, time.Now())
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if n != 2 {
		t.Errorf("reverted %d, want 2", n)
	}
}

func TestTicketPanelRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	panel := &TicketPanel{
		MessageID:  "m1",
		GuildID:    "g",
		ChannelID:  "c",
		TicketType: "thread",
		CreatedBy:  "u",
		Categories: []TicketCategory{
			{Name: "Support", Description: "Help", Glyph: "🛟"},
			{Name: "Report", Description: "Report a user", Glyph: "🚨"},
		},
	}
	if err := s.SaveTicketPanel(ctx, panel); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.TicketPanel(ctx, "m1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Categories) != 2 || got.Categories[1].Name != "Report" {
		t.Errorf("categories = %+v", got.Categories)
	}

	if _, err := s.TicketPanel(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing panel err = %v", err)
	}

	if err := s.CreateTicket(ctx, &Ticket{ThreadID: "t1", GuildID: "g", PanelMessageID: "m1", CategoryPosition: 1, UserID: "u"}); err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	tickets, err := s.UserTickets(ctx, "g", "u")
	if err != nil || len(tickets) != 1 || tickets[0].CategoryPosition != 1 {
		t.Errorf("tickets = %+v, err = %v", tickets, err)
	}
}

func TestCommandLogIsTrimmed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < commandHistoryLimit+5; i++ {
		if err := s.LogCommand(ctx, CommandLogEntry{GuildID: "g", ChannelID: "c", UserID: "u", Username: "n", Command: "ping"}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}
	got, err := s.CommandHistory(ctx, "g", 1000)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != commandHistoryLimit {
		t.Errorf("history has %d entries, want %d", len(got), commandHistoryLimit)
	}
}

func TestCommandHashesAndGroups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetCommandHash(ctx, "g", "ban", "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCommandHash(ctx, "g", "ban", "b"); err != nil {
		t.Fatal(err)
	}
	hashes, err := s.CommandHashes(ctx, "g")
	if err != nil || hashes["ban"] != "b" {
		t.Errorf("hashes = %v, err = %v", hashes, err)
	}
	if err := s.DeleteCommandHash(ctx, "g", "ban"); err != nil {
		t.Fatal(err)
	}
	hashes, _ = s.CommandHashes(ctx, "g")
	if len(hashes) != 0 {
		t.Errorf("hash not deleted: %v", hashes)
	}

	if err := s.DisableGroup(ctx, "g", "showcase"); err != nil {
		t.Fatal(err)
	}
	if err := s.DisableGroup(ctx, "g", "showcase"); err != nil {
		t.Fatal(err)
	}
	disabled, err := s.IsGroupDisabled(ctx, "g", "showcase")
	if err != nil || !disabled {
		t.Errorf("group not disabled, err = %v", err)
	}
	if err := s.EnableGroup(ctx, "g", "showcase"); err != nil {
		t.Fatal(err)
	}
	groups, _ := s.DisabledGroups(ctx, "g")
	if len(groups) != 0 {
		t.Errorf("groups = %v", groups)
	}
}
