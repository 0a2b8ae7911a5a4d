// Package tickets implements the ticket setup wizard and the standing panel
// that opens support threads.
package tickets

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/storage"
)

// PanelCustomID is the custom id of every standing ticket panel menu.
const PanelCustomID = "ticket-panel"

// MaxCategories is the most entries a panel's select menu can hold.
const MaxCategories = 25

// Type is how a ticket is opened once a category is picked.
type Type string

const (
	TypeChannel Type = "channel"
	TypeThread  Type = "thread"
	TypeVoice   Type = "voice"
)

// Types lists every ticket type in display order.
var Types = []Type{TypeThread, TypeChannel, TypeVoice}

// ErrUnsupportedType is returned for ticket types without a driver.
var ErrUnsupportedType = errors.New("tickets: unsupported ticket type")

// Supported reports whether t can be configured.
func Supported(t Type) bool { return t == TypeThread }

// Category is one complete ticket category.
type Category struct {
	Name        string
	Description string
	Glyph       string
}

// Translator resolves localized strings by key.
type Translator interface {
	T(key string, args ...any) string
}

// API is the Discord surface the wizard and panel need.
type API interface {
	inquirer.Messenger
	ThreadStartComplex(channelID string, data *discordgo.ThreadStart) (*discordgo.Channel, error)
	ThreadMemberAdd(threadID, memberID string) error
}

// Store persists panels and opened tickets.
type Store interface {
	SaveTicketPanel(ctx context.Context, p *storage.TicketPanel) error
	TicketPanel(ctx context.Context, messageID string) (*storage.TicketPanel, error)
	CreateTicket(ctx context.Context, t *storage.Ticket) error
}
