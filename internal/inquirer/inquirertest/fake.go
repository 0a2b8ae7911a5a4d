// Package inquirertest provides an in-memory Messenger and event builders
// for testing code that runs prompts.
package inquirertest

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ErrClosedDM is what the fake returns for sends into a DM that is set to
// fail.
var ErrClosedDM = errors.New("cannot send messages to this user")

// RenderKind tells which API call produced a Render.
type RenderKind int

const (
	ReplyEdit RenderKind = iota
	Send
	MessageEdit
)

// Render is one visible change to a message.
type Render struct {
	Kind       RenderKind
	ChannelID  string
	MessageID  string
	Content    *string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

func (r Render) Text() string {
	if r.Content == nil {
		return ""
	}
	return *r.Content
}

type Response struct {
	Interaction *discordgo.Interaction
	Response    *discordgo.InteractionResponse
}

// Messenger is a concurrency-safe fake of inquirer.Messenger.
type Messenger struct {
	mu sync.Mutex

	channels map[string]*discordgo.Channel
	sendErrs map[string][]error
	dmErr    error
	delErr   error
	editErrs map[string]error
	nextID   int

	responses []Response
	renders   []Render
	deleted   []string

	notify chan Render
}

func NewMessenger() *Messenger {
	return &Messenger{
		channels: make(map[string]*discordgo.Channel),
		sendErrs: make(map[string][]error),
		editErrs: make(map[string]error),
		notify:   make(chan Render, 256),
	}
}

// AddChannel registers a channel returned by Channel.
func (f *Messenger) AddChannel(id string, typ discordgo.ChannelType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[id] = &discordgo.Channel{ID: id, Type: typ}
}

// FailSends queues errors for the next sends into channelID; a nil entry
// lets that send succeed.
func (f *Messenger) FailSends(channelID string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErrs[channelID] = append(f.sendErrs[channelID], errs...)
}

// FailDMCreate makes UserChannelCreate fail.
func (f *Messenger) FailDMCreate(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dmErr = err
}

// FailDeletes makes every delete fail with err.
func (f *Messenger) FailDeletes(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delErr = err
}

// FailReplyEdits makes every reply edit whose content contains substr fail
// with err.
func (f *Messenger) FailReplyEdits(substr string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editErrs[substr] = err
}

// DMChannelID is the id the fake uses for a user's DM channel.
func DMChannelID(userID string) string { return "dm-" + userID }

func (f *Messenger) Channel(channelID string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return ch, nil
}

func (f *Messenger) UserChannelCreate(userID string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	id := DMChannelID(userID)
	ch, ok := f.channels[id]
	if !ok {
		ch = &discordgo.Channel{ID: id, Type: discordgo.ChannelTypeDM}
		f.channels[id] = ch
	}
	return ch, nil
}

func (f *Messenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	if q := f.sendErrs[channelID]; len(q) > 0 {
		err := q[0]
		f.sendErrs[channelID] = q[1:]
		if err != nil {
			f.mu.Unlock()
			return nil, err
		}
	}
	f.nextID++
	id := fmt.Sprintf("m%d", f.nextID)
	content := data.Content
	r := Render{Kind: Send, ChannelID: channelID, MessageID: id, Content: &content, Embeds: data.Embeds, Components: data.Components}
	f.record(r)
	f.mu.Unlock()
	return &discordgo.Message{ID: id, ChannelID: channelID, Content: data.Content}, nil
}

func (f *Messenger) ChannelMessageEditComplex(m *discordgo.MessageEdit) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := Render{Kind: MessageEdit, ChannelID: m.Channel, MessageID: m.ID, Content: m.Content}
	if m.Embeds != nil {
		r.Embeds = *m.Embeds
	}
	if m.Components != nil {
		r.Components = *m.Components
	}
	f.record(r)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *Messenger) ChannelMessageDelete(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	return nil
}

func (f *Messenger) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, Response{Interaction: i, Response: resp})
	return nil
}

func (f *Messenger) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if edit.Content != nil {
		for substr, err := range f.editErrs {
			if strings.Contains(*edit.Content, substr) {
				return nil, err
			}
		}
	}
	id := "reply-" + i.ID
	r := Render{Kind: ReplyEdit, ChannelID: i.ChannelID, MessageID: id, Content: edit.Content}
	if edit.Embeds != nil {
		r.Embeds = *edit.Embeds
	}
	if edit.Components != nil {
		r.Components = *edit.Components
	}
	f.record(r)
	return &discordgo.Message{ID: id, ChannelID: i.ChannelID}, nil
}

func (f *Messenger) record(r Render) {
	f.renders = append(f.renders, r)
	select {
	case f.notify <- r:
	default:
	}
}

// Renders returns every render so far.
func (f *Messenger) Renders() []Render {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Render(nil), f.renders...)
}

// Responses returns every interaction response so far.
func (f *Messenger) Responses() []Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Response(nil), f.responses...)
}

// Deleted returns "channel/message" for every successful delete.
func (f *Messenger) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// Await blocks until a render whose content contains substr appears,
// skipping any other render. It fails the test after a few seconds.
func (f *Messenger) Await(t testing.TB, substr string) Render {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-f.notify:
			if r.Content != nil && strings.Contains(*r.Content, substr) {
				return r
			}
		case <-deadline:
			t.Fatalf("no render containing %q", substr)
			return Render{}
		}
	}
}

// CustomIDs lists the custom ids of every component in r, in order.
func (r Render) CustomIDs() []string {
	var out []string
	for _, c := range r.Components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			switch v := inner.(type) {
			case discordgo.Button:
				out = append(out, v.CustomID)
			case discordgo.SelectMenu:
				out = append(out, v.CustomID)
			}
		}
	}
	return out
}

// Button returns the button labelled label.
func (r Render) Button(t testing.TB, label string) discordgo.Button {
	t.Helper()
	for _, c := range r.Components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok && b.Label == label {
				return b
			}
		}
	}
	t.Fatalf("no button %q in render", label)
	return discordgo.Button{}
}

// Menu returns the first select menu in r.
func (r Render) Menu(t testing.TB) discordgo.SelectMenu {
	t.Helper()
	for _, c := range r.Components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if m, ok := inner.(discordgo.SelectMenu); ok {
				return m
			}
		}
	}
	t.Fatal("no select menu in render")
	return discordgo.SelectMenu{}
}
