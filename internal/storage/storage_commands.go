package storage

import (
	"context"
	"fmt"
	"time"
)

const commandHistoryLimit = 50

type CommandLogEntry struct {
	GuildID   string
	ChannelID string
	UserID    string
	Username  string
	Command   string
	Param     string
	CreatedAt time.Time
}

// LogCommand appends to a guild's command history, keeping the newest
// commandHistoryLimit entries.
func (s *Storage) LogCommand(ctx context.Context, e CommandLogEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO command_log (guild_id, channel_id, user_id, username, command, param, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.GuildID, e.ChannelID, e.UserID, e.Username, e.Command, e.Param, toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("log command: %w", err)
	}

	_, err = s.exec(ctx, s.db, `
		DELETE FROM command_log WHERE guild_id = ? AND id NOT IN (
			SELECT id FROM command_log WHERE guild_id = ? ORDER BY id DESC LIMIT ?
		)`, e.GuildID, e.GuildID, commandHistoryLimit)
	if err != nil {
		return fmt.Errorf("trim command log: %w", err)
	}
	return nil
}

// CommandHistory returns up to limit entries, newest first.
func (s *Storage) CommandHistory(ctx context.Context, guildID string, limit int) ([]CommandLogEntry, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT guild_id, channel_id, user_id, username, command, param, created_at
		FROM command_log WHERE guild_id = ? ORDER BY id DESC LIMIT ?`, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("command history: %w", err)
	}
	defer rows.Close()

	var out []CommandLogEntry
	for rows.Next() {
		var e CommandLogEntry
		var created int64
		if err := rows.Scan(&e.GuildID, &e.ChannelID, &e.UserID, &e.Username, &e.Command, &e.Param, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = fromMillis(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CommandHashes returns name -> hash of the slash definitions last
// registered in a guild.
func (s *Storage) CommandHashes(ctx context.Context, guildID string) (map[string]string, error) {
	rows, err := s.query(ctx, s.db, `SELECT name, hash FROM command_hashes WHERE guild_id = ?`, guildID)
	if err != nil {
		return nil, fmt.Errorf("load command hashes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, hash string
		if err := rows.Scan(&name, &hash); err != nil {
			return nil, err
		}
		out[name] = hash
	}
	return out, rows.Err()
}

func (s *Storage) SetCommandHash(ctx context.Context, guildID, name, hash string) error {
	_, err := s.exec(ctx, s.db, `
		INSERT INTO command_hashes (guild_id, name, hash) VALUES (?, ?, ?)
		ON CONFLICT (guild_id, name) DO UPDATE SET hash = excluded.hash`, guildID, name, hash)
	if err != nil {
		return fmt.Errorf("set command hash %s/%s: %w", guildID, name, err)
	}
	return nil
}

func (s *Storage) DeleteCommandHash(ctx context.Context, guildID, name string) error {
	_, err := s.exec(ctx, s.db, `DELETE FROM command_hashes WHERE guild_id = ? AND name = ?`, guildID, name)
	if err != nil {
		return fmt.Errorf("delete command hash %s/%s: %w", guildID, name, err)
	}
	return nil
}

func (s *Storage) DisableGroup(ctx context.Context, guildID, group string) error {
	_, err := s.exec(ctx, s.db, `
		INSERT INTO disabled_groups (guild_id, group_name) VALUES (?, ?)
		ON CONFLICT (guild_id, group_name) DO NOTHING`, guildID, group)
	if err != nil {
		return fmt.Errorf("disable group %s: %w", group, err)
	}
	return nil
}

func (s *Storage) EnableGroup(ctx context.Context, guildID, group string) error {
	_, err := s.exec(ctx, s.db, `DELETE FROM disabled_groups WHERE guild_id = ? AND group_name = ?`, guildID, group)
	if err != nil {
		return fmt.Errorf("enable group %s: %w", group, err)
	}
	return nil
}

func (s *Storage) IsGroupDisabled(ctx context.Context, guildID, group string) (bool, error) {
	var n int
	err := s.queryRow(ctx, s.db,
		`SELECT COUNT(*) FROM disabled_groups WHERE guild_id = ? AND group_name = ?`, guildID, group).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check group %s: %w", group, err)
	}
	return n > 0, nil
}

func (s *Storage) DisabledGroups(ctx context.Context, guildID string) ([]string, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT group_name FROM disabled_groups WHERE guild_id = ? ORDER BY group_name`, guildID)
	if err != nil {
		return nil, fmt.Errorf("list disabled groups: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
