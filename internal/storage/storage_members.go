package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Guild struct {
	ID        string
	DiscordID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID        string
	DiscordID string
	Locale    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpsertGuild returns the guild row for discordID, creating it on first use.
func (s *Storage) UpsertGuild(ctx context.Context, discordID string) (*Guild, error) {
	now := toMillis(s.now())
	_, err := s.exec(ctx, s.db, `
		INSERT INTO guilds (id, discord_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (discord_id) DO NOTHING`,
		uuid.NewString(), discordID, now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert guild %s: %w", discordID, err)
	}

	var g Guild
	var created, updated int64
	err = s.queryRow(ctx, s.db,
		`SELECT id, discord_id, created_at, updated_at FROM guilds WHERE discord_id = ?`, discordID).
		Scan(&g.ID, &g.DiscordID, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("load guild %s: %w", discordID, err)
	}
	g.CreatedAt, g.UpdatedAt = fromMillis(created), fromMillis(updated)
	return &g, nil
}

// UpsertUser returns the user row for discordID, creating it on first use.
// When guild is non-nil the user is also linked to it.
func (s *Storage) UpsertUser(ctx context.Context, discordID, locale string, guild *Guild) (*User, error) {
	now := toMillis(s.now())
	_, err := s.exec(ctx, s.db, `
		INSERT INTO users (id, discord_id, locale, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (discord_id) DO NOTHING`,
		uuid.NewString(), discordID, locale, now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", discordID, err)
	}

	u, err := s.userByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	if guild != nil {
		_, err = s.exec(ctx, s.db, `
			INSERT INTO users_guilds (user_id, guild_id) VALUES (?, ?)
			ON CONFLICT (user_id, guild_id) DO NOTHING`, u.ID, guild.ID)
		if err != nil {
			return nil, fmt.Errorf("link user %s to guild %s: %w", discordID, guild.DiscordID, err)
		}
	}
	return u, nil
}

func (s *Storage) userByDiscordID(ctx context.Context, discordID string) (*User, error) {
	var u User
	var created, updated int64
	err := s.queryRow(ctx, s.db,
		`SELECT id, discord_id, locale, created_at, updated_at FROM users WHERE discord_id = ?`, discordID).
		Scan(&u.ID, &u.DiscordID, &u.Locale, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", discordID, err)
	}
	u.CreatedAt, u.UpdatedAt = fromMillis(created), fromMillis(updated)
	return &u, nil
}

// GuildMembers lists the Discord ids of users linked to a guild.
func (s *Storage) GuildMembers(ctx context.Context, guildDiscordID string) ([]string, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT u.discord_id FROM users u
		JOIN users_guilds ug ON ug.user_id = u.id
		JOIN guilds g ON g.id = ug.guild_id
		WHERE g.discord_id = ?
		ORDER BY u.discord_id`, guildDiscordID)
	if err != nil {
		return nil, fmt.Errorf("list members of %s: %w", guildDiscordID, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
