package storage

import (
	"context"
	"fmt"
	"strings"
)

// Schema is create-if-not-exists only. {{serial}} expands per dialect.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS guilds (
		id         TEXT PRIMARY KEY,
		discord_id TEXT NOT NULL UNIQUE,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		discord_id TEXT NOT NULL UNIQUE,
		locale     TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users_guilds (
		user_id  TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		PRIMARY KEY (user_id, guild_id)
	)`,
	`CREATE TABLE IF NOT EXISTS punishments (
		id          {{serial}},
		type        TEXT NOT NULL,
		guild_id    TEXT NOT NULL,
		user_id     TEXT NOT NULL,
		punisher_id TEXT NOT NULL,
		reason      TEXT,
		proofs      TEXT NOT NULL DEFAULT '',
		expires_at  BIGINT,
		reverted_at BIGINT,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_punishments_target ON punishments(guild_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_punishments_expiry ON punishments(type, expires_at)`,
	`CREATE TABLE IF NOT EXISTS ticket_panels (
		message_id  TEXT PRIMARY KEY,
		guild_id    TEXT NOT NULL,
		channel_id  TEXT NOT NULL,
		ticket_type TEXT NOT NULL,
		created_by  TEXT NOT NULL,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_categories (
		panel_message_id TEXT NOT NULL,
		position         INTEGER NOT NULL,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL,
		glyph            TEXT NOT NULL,
		PRIMARY KEY (panel_message_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		thread_id         TEXT PRIMARY KEY,
		guild_id          TEXT NOT NULL,
		panel_message_id  TEXT NOT NULL,
		category_position INTEGER NOT NULL,
		user_id           TEXT NOT NULL,
		created_at        BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets(guild_id, user_id)`,
	`CREATE TABLE IF NOT EXISTS command_log (
		id         {{serial}},
		guild_id   TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		username   TEXT NOT NULL,
		command    TEXT NOT NULL,
		param      TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_command_log_guild ON command_log(guild_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS command_hashes (
		guild_id TEXT NOT NULL,
		name     TEXT NOT NULL,
		hash     TEXT NOT NULL,
		PRIMARY KEY (guild_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS disabled_groups (
		guild_id   TEXT NOT NULL,
		group_name TEXT NOT NULL,
		PRIMARY KEY (guild_id, group_name)
	)`,
}

func (s *Storage) migrate(ctx context.Context) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.dialect == Postgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}
	for i, stmt := range schema {
		stmt = strings.ReplaceAll(stmt, "{{serial}}", serial)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
