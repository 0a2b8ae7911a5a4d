package tickets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/storage"
)

// Open handles a selection on a standing panel: it opens a private thread
// for the selecting user under the panel's channel and records the ticket.
func (w *Wizard) Open(ctx context.Context, it *inquirer.Interaction, tr Translator) error {
	if err := w.api.InteractionRespond(it.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		return fmt.Errorf("acknowledge panel selection: %w", err)
	}
	it.MarkAcknowledged()

	if it.Message == nil {
		w.replaceReply(it, tr.T("tickets.panel.unknown"))
		return nil
	}
	panel, err := w.store.TicketPanel(ctx, it.Message.ID)
	if errors.Is(err, storage.ErrNotFound) {
		w.replaceReply(it, tr.T("tickets.panel.unknown"))
		return nil
	}
	if err != nil {
		return err
	}

	values := it.MessageComponentData().Values
	pos := -1
	if len(values) == 1 {
		if n, err := strconv.Atoi(values[0]); err == nil && n >= 0 && n < len(panel.Categories) {
			pos = n
		}
	}
	if pos < 0 {
		w.replaceReply(it, tr.T("tickets.panel.unknown_category"))
		return nil
	}
	category := panel.Categories[pos]
	actor := it.Actor()

	thread, err := w.api.ThreadStartComplex(panel.ChannelID, &discordgo.ThreadStart{
		Name:                truncate(ThreadName(category.Glyph, category.Name, actor.Username), 100),
		Type:                discordgo.ChannelTypeGuildPrivateThread,
		AutoArchiveDuration: 1440,
		Invitable:           false,
	})
	if err != nil {
		return fmt.Errorf("start ticket thread: %w", err)
	}
	if err := w.api.ThreadMemberAdd(thread.ID, actor.ID); err != nil {
		return fmt.Errorf("add %s to ticket thread: %w", actor.ID, err)
	}
	intro := tr.T("tickets.panel.thread_intro", "<@"+actor.ID+">", category.Name, category.Description)
	if _, err := w.api.ChannelMessageSendComplex(thread.ID, &discordgo.MessageSend{Content: intro}); err != nil {
		w.logger.Warn("Failed to post ticket intro", zap.String("thread", thread.ID), zap.Error(err))
	}

	if err := w.store.CreateTicket(ctx, &storage.Ticket{
		ThreadID:         thread.ID,
		GuildID:          panel.GuildID,
		PanelMessageID:   panel.MessageID,
		CategoryPosition: pos,
		UserID:           actor.ID,
	}); err != nil {
		return err
	}

	w.logger.Info("Ticket opened",
		zap.String("guild", panel.GuildID), zap.String("user", actor.ID),
		zap.String("thread", thread.ID), zap.String("category", category.Name))
	w.replaceReply(it, tr.T("tickets.panel.opened", "<#"+thread.ID+">"))
	return nil
}

// ThreadName is the title of a ticket thread.
func ThreadName(glyph, category, username string) string {
	return glyph + " " + category + " · " + username
}
