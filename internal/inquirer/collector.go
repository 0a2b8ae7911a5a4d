package inquirer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// IDSeparator joins a session token and an encoded choice id in a button's
// custom id.
const IDSeparator = "&"

// Dispatch is the outcome of routing one gateway event.
type Dispatch int

const (
	// Unmatched events belong to no pending session.
	Unmatched Dispatch = iota
	// Delivered events resolved or fed a pending session.
	Delivered
	// Foreign events targeted a pending session but came from another user.
	// They are dropped; the session stays pending.
	Foreign
)

// Collector routes component and message events to pending prompt sessions.
// A session's waiter is removed under the lock by whichever of answer,
// deadline or cancellation reaches it first.
type Collector struct {
	mu         sync.Mutex
	components map[string]*componentWaiter
	messages   map[string][]*messageWaiter
}

func NewCollector() *Collector {
	return &Collector{
		components: make(map[string]*componentWaiter),
		messages:   make(map[string][]*messageWaiter),
	}
}

type componentWaiter struct {
	c       *Collector
	token   string
	actorID string
	kind    discordgo.ComponentType
	answer  chan *discordgo.Interaction
}

type messageWaiter struct {
	c         *Collector
	channelID string
	actorID   string
	max       int
	collected []*discordgo.Message
	full      chan struct{}
}

// TokenOf extracts the session token from a component custom id.
func TokenOf(customID string) string {
	token, _, _ := strings.Cut(customID, IDSeparator)
	return token
}

// Pending reports how many sessions are waiting. Used by tests and debug
// logging.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.components)
	for _, ws := range c.messages {
		n += len(ws)
	}
	return n
}

func (c *Collector) expectComponent(token, actorID string, kind discordgo.ComponentType) *componentWaiter {
	w := &componentWaiter{
		c:       c,
		token:   token,
		actorID: actorID,
		kind:    kind,
		answer:  make(chan *discordgo.Interaction, 1),
	}
	c.mu.Lock()
	c.components[token] = w
	c.mu.Unlock()
	return w
}

// DispatchComponent offers a component interaction to pending sessions.
func (c *Collector) DispatchComponent(i *discordgo.Interaction) Dispatch {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return Unmatched
	}
	data := i.MessageComponentData()
	token := TokenOf(data.CustomID)

	c.mu.Lock()
	w, ok := c.components[token]
	if !ok || w.kind != data.ComponentType {
		c.mu.Unlock()
		return Unmatched
	}
	if interactionUserID(i) != w.actorID {
		c.mu.Unlock()
		return Foreign
	}
	delete(c.components, token)
	c.mu.Unlock()

	w.answer <- i
	return Delivered
}

// cancel unregisters the waiter. It reports false when an answer already
// claimed it.
func (w *componentWaiter) cancel() bool {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	if cur, ok := w.c.components[w.token]; ok && cur == w {
		delete(w.c.components, w.token)
		return true
	}
	return false
}

func (w *componentWaiter) wait(ctx context.Context, timeout time.Duration) (*discordgo.Interaction, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case i := <-w.answer:
		return i, nil
	case <-timer.C:
		if w.cancel() {
			return nil, fmt.Errorf("%w after %s", ErrPromptTimeout, timeout)
		}
	case <-ctx.Done():
		if w.cancel() {
			return nil, ctx.Err()
		}
	}
	// an answer won the race against the deadline
	return <-w.answer, nil
}

func (c *Collector) expectMessages(channelID, actorID string, max int) *messageWaiter {
	w := &messageWaiter{
		c:         c,
		channelID: channelID,
		actorID:   actorID,
		max:       max,
		full:      make(chan struct{}),
	}
	c.mu.Lock()
	c.messages[channelID] = append(c.messages[channelID], w)
	c.mu.Unlock()
	return w
}

// DispatchMessage offers a created message to every pending collector in
// its channel waiting on its author.
func (c *Collector) DispatchMessage(m *discordgo.Message) Dispatch {
	if m == nil || m.Author == nil || m.Author.Bot {
		return Unmatched
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	waiters := c.messages[m.ChannelID]
	if len(waiters) == 0 {
		return Unmatched
	}

	result := Unmatched
	kept := waiters[:0]
	for _, w := range waiters {
		if w.actorID != m.Author.ID {
			kept = append(kept, w)
			if result == Unmatched {
				result = Foreign
			}
			continue
		}
		result = Delivered
		w.collected = append(w.collected, m)
		if w.max > 0 && len(w.collected) >= w.max {
			close(w.full)
			continue
		}
		kept = append(kept, w)
	}
	c.removeMessageWaitersLocked(m.ChannelID, kept)
	return result
}

func (c *Collector) removeMessageWaitersLocked(channelID string, kept []*messageWaiter) {
	if len(kept) == 0 {
		delete(c.messages, channelID)
		return
	}
	c.messages[channelID] = kept
}

// stop unregisters the waiter and returns what it collected so far.
func (w *messageWaiter) stop() []*discordgo.Message {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()

	waiters := w.c.messages[w.channelID]
	kept := make([]*messageWaiter, 0, len(waiters))
	for _, other := range waiters {
		if other != w {
			kept = append(kept, other)
		}
	}
	w.c.removeMessageWaitersLocked(w.channelID, kept)

	out := make([]*discordgo.Message, len(w.collected))
	copy(out, w.collected)
	return out
}

// wait blocks until the cap is reached, the deadline passes or ctx ends,
// and returns the messages in arrival order.
func (w *messageWaiter) wait(ctx context.Context, timeout time.Duration) ([]*discordgo.Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-w.full:
		return w.stop(), nil
	case <-timer.C:
		got := w.stop()
		if w.max > 0 && len(got) >= w.max {
			return got, nil
		}
		if w.max == 0 && len(got) > 0 {
			return got, nil
		}
		return got, fmt.Errorf("%w after %s with %d message(s)", ErrPromptTimeout, timeout, len(got))
	case <-ctx.Done():
		return w.stop(), ctx.Err()
	}
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
