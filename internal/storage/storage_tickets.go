package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TicketCategory struct {
	Name        string
	Description string
	Glyph       string
}

// TicketPanel is the standing select menu posted after a ticket setup.
type TicketPanel struct {
	MessageID  string
	GuildID    string
	ChannelID  string
	TicketType string
	CreatedBy  string
	Categories []TicketCategory
	CreatedAt  time.Time
}

type Ticket struct {
	ThreadID         string
	GuildID          string
	PanelMessageID   string
	CategoryPosition int
	UserID           string
	CreatedAt        time.Time
}

// SaveTicketPanel stores a panel and its ordered categories atomically.
func (s *Storage) SaveTicketPanel(ctx context.Context, p *TicketPanel) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `
			INSERT INTO ticket_panels (message_id, guild_id, channel_id, ticket_type, created_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.MessageID, p.GuildID, p.ChannelID, p.TicketType, p.CreatedBy, toMillis(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("save ticket panel %s: %w", p.MessageID, err)
		}
		for i, c := range p.Categories {
			_, err := s.exec(ctx, tx, `
				INSERT INTO ticket_categories (panel_message_id, position, name, description, glyph)
				VALUES (?, ?, ?, ?, ?)`, p.MessageID, i, c.Name, c.Description, c.Glyph)
			if err != nil {
				return fmt.Errorf("save ticket category %d: %w", i, err)
			}
		}
		return nil
	})
}

// TicketPanel loads a panel by the id of the message carrying its menu.
func (s *Storage) TicketPanel(ctx context.Context, messageID string) (*TicketPanel, error) {
	var p TicketPanel
	var created int64
	err := s.queryRow(ctx, s.db, `
		SELECT message_id, guild_id, channel_id, ticket_type, created_by, created_at
		FROM ticket_panels WHERE message_id = ?`, messageID).
		Scan(&p.MessageID, &p.GuildID, &p.ChannelID, &p.TicketType, &p.CreatedBy, &created)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load ticket panel %s: %w", messageID, err)
	}
	p.CreatedAt = fromMillis(created)

	rows, err := s.query(ctx, s.db, `
		SELECT name, description, glyph FROM ticket_categories
		WHERE panel_message_id = ? ORDER BY position`, messageID)
	if err != nil {
		return nil, fmt.Errorf("load ticket categories %s: %w", messageID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var c TicketCategory
		if err := rows.Scan(&c.Name, &c.Description, &c.Glyph); err != nil {
			return nil, err
		}
		p.Categories = append(p.Categories, c)
	}
	return &p, rows.Err()
}

func (s *Storage) CreateTicket(ctx context.Context, t *Ticket) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO tickets (thread_id, guild_id, panel_message_id, category_position, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ThreadID, t.GuildID, t.PanelMessageID, t.CategoryPosition, t.UserID, toMillis(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("create ticket %s: %w", t.ThreadID, err)
	}
	return nil
}

// UserTickets lists the tickets a user opened in a guild, newest first.
func (s *Storage) UserTickets(ctx context.Context, guildID, userID string) ([]Ticket, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT thread_id, guild_id, panel_message_id, category_position, user_id, created_at
		FROM tickets WHERE guild_id = ? AND user_id = ?
		ORDER BY created_at DESC`, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		var created int64
		if err := rows.Scan(&t.ThreadID, &t.GuildID, &t.PanelMessageID, &t.CategoryPosition, &t.UserID, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = fromMillis(created)
		out = append(out, t)
	}
	return out, rows.Err()
}
