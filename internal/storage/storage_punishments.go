package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type PunishmentType string

const (
	PunishmentBan        PunishmentType = "BAN"
	PunishmentKick       PunishmentType = "KICK"
	PunishmentWarn       PunishmentType = "WARN"
	PunishmentMute       PunishmentType = "MUTE"
	PunishmentRevertBan  PunishmentType = "REVERT_BAN"
	PunishmentRevertMute PunishmentType = "REVERT_MUTE"
)

// Punishment is one moderation action. GuildID, UserID and PunisherID are
// row ids; the *DiscordID fields are filled on reads.
type Punishment struct {
	ID         int64
	Type       PunishmentType
	GuildID    string
	UserID     string
	PunisherID string
	Reason     string
	Proofs     []string
	ExpiresAt  *time.Time
	RevertedAt *time.Time
	CreatedAt  time.Time

	GuildDiscordID    string
	UserDiscordID     string
	PunisherDiscordID string
}

// CreatePunishment stores p and returns its id. CreatedAt defaults to now.
func (s *Storage) CreatePunishment(ctx context.Context, p *Punishment) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	var id int64
	err := s.queryRow(ctx, s.db, `
		INSERT INTO punishments (type, guild_id, user_id, punisher_id, reason, proofs, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		string(p.Type), p.GuildID, p.UserID, p.PunisherID, nullString(p.Reason),
		strings.Join(p.Proofs, "\n"), nullMillis(p.ExpiresAt), toMillis(p.CreatedAt)).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create punishment: %w", err)
	}
	p.ID = id
	return id, nil
}

const punishmentColumns = `
	p.id, p.type, p.guild_id, p.user_id, p.punisher_id, p.reason, p.proofs,
	p.expires_at, p.reverted_at, p.created_at,
	g.discord_id, u.discord_id, pu.discord_id`

const punishmentJoins = `
	FROM punishments p
	JOIN guilds g ON g.id = p.guild_id
	JOIN users u ON u.id = p.user_id
	JOIN users pu ON pu.id = p.punisher_id`

// ListPunishments returns a user's history in a guild, newest first.
func (s *Storage) ListPunishments(ctx context.Context, guildDiscordID, userDiscordID string) ([]Punishment, error) {
	rows, err := s.query(ctx, s.db, `SELECT `+punishmentColumns+punishmentJoins+`
		WHERE g.discord_id = ? AND u.discord_id = ?
		ORDER BY p.created_at DESC, p.id DESC`, guildDiscordID, userDiscordID)
	if err != nil {
		return nil, fmt.Errorf("list punishments: %w", err)
	}
	return scanPunishments(rows)
}

// ExpiredBans returns temporary bans whose expiry passed and that were not
// lifted yet.
func (s *Storage) ExpiredBans(ctx context.Context, now time.Time) ([]Punishment, error) {
	rows, err := s.query(ctx, s.db, `SELECT `+punishmentColumns+punishmentJoins+`
		WHERE p.type = ? AND p.expires_at IS NOT NULL AND p.expires_at <= ? AND p.reverted_at IS NULL
		ORDER BY p.expires_at`, string(PunishmentBan), toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("list expired bans: %w", err)
	}
	return scanPunishments(rows)
}

// MarkReverted flags a punishment as lifted.
func (s *Storage) MarkReverted(ctx context.Context, id int64, at time.Time) error {
	res, err := s.exec(ctx, s.db,
		`UPDATE punishments SET reverted_at = ? WHERE id = ? AND reverted_at IS NULL`, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("revert punishment %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RevertActive flags every unreverted punishment of typ for the user in the
// guild as lifted and reports how many were affected.
func (s *Storage) RevertActive(ctx context.Context, guild *Guild, user *User, typ PunishmentType, at time.Time) (int64, error) {
	res, err := s.exec(ctx, s.db, `
		UPDATE punishments SET reverted_at = ?
		WHERE guild_id = ? AND user_id = ? AND type = ? AND reverted_at IS NULL`,
		toMillis(at), guild.ID, user.ID, string(typ))
	if err != nil {
		return 0, fmt.Errorf("revert %s punishments: %w", typ, err)
	}
	return res.RowsAffected()
}

func scanPunishments(rows *sql.Rows) ([]Punishment, error) {
	defer rows.Close()

	var out []Punishment
	for rows.Next() {
		var (
			p                 Punishment
			typ, proofs       string
			reason            sql.NullString
			expires, reverted sql.NullInt64
			created           int64
		)
		if err := rows.Scan(&p.ID, &typ, &p.GuildID, &p.UserID, &p.PunisherID, &reason, &proofs,
			&expires, &reverted, &created,
			&p.GuildDiscordID, &p.UserDiscordID, &p.PunisherDiscordID); err != nil {
			return nil, fmt.Errorf("scan punishment: %w", err)
		}
		p.Type = PunishmentType(typ)
		p.Reason = reason.String
		if proofs != "" {
			p.Proofs = strings.Split(proofs, "\n")
		}
		p.ExpiresAt = timePtr(expires)
		p.RevertedAt = timePtr(reverted)
		p.CreatedAt = fromMillis(created)
		out = append(out, p)
	}
	return out, rows.Err()
}
