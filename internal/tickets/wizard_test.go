package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/akane-bot/akane/internal/inquirer"
	"github.com/akane-bot/akane/internal/inquirer/inquirertest"
	"github.com/akane-bot/akane/internal/storage"
)

const (
	guildID   = "g1"
	channelID = "c1"
	panelChan = "c-panel"
	actorID   = "u1"
)

type keys struct{}

func (keys) T(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return key + " " + strings.TrimSpace(fmt.Sprintln(args...))
}

type fakeAPI struct {
	*inquirertest.Messenger

	mu      sync.Mutex
	threads []*discordgo.ThreadStart
	members []string
}

func (f *fakeAPI) ThreadStartComplex(channelID string, data *discordgo.ThreadStart) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads = append(f.threads, data)
	return &discordgo.Channel{ID: fmt.Sprintf("t%d", len(f.threads)), ParentID: channelID, Type: data.Type}, nil
}

func (f *fakeAPI) ThreadMemberAdd(threadID, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append(f.members, threadID+"/"+memberID)
	return nil
}

type memStore struct {
	mu      sync.Mutex
	panels  map[string]*storage.TicketPanel
	tickets []*storage.Ticket
}

func (m *memStore) SaveTicketPanel(_ context.Context, p *storage.TicketPanel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panels[p.MessageID] = p
	return nil
}

func (m *memStore) TicketPanel(_ context.Context, id string) (*storage.TicketPanel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.panels[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

func (m *memStore) CreateTicket(_ context.Context, t *storage.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, t)
	return nil
}

type harness struct {
	api    *fakeAPI
	store  *memStore
	engine *inquirer.Engine
	wizard *Wizard
	it     *inquirer.Interaction
}

func newHarness(t *testing.T, opts ...WizardOption) *harness {
	t.Helper()
	f := inquirertest.NewMessenger()
	f.AddChannel(channelID, discordgo.ChannelTypeGuildText)
	api := &fakeAPI{Messenger: f}
	store := &memStore{panels: make(map[string]*storage.TicketPanel)}
	engine := inquirer.New(api, inquirer.NewCollector(), nil, inquirer.WithDefaultTimeout(5*time.Second))
	opts = append([]WizardOption{WithRetryTimeout(50 * time.Millisecond), WithAnswerTimeout(5 * time.Second)}, opts...)
	return &harness{
		api:    api,
		store:  store,
		engine: engine,
		wizard: NewWizard(engine, api, store, nil, opts...),
		it:     inquirer.NewInteraction(inquirertest.SlashCommand(guildID, channelID, actorID)),
	}
}

type runResult struct {
	res *Result
	err error
}

func (h *harness) run() <-chan runResult {
	out := make(chan runResult, 1)
	go func() {
		res, err := h.wizard.Configure(context.Background(), h.it, keys{}, panelChan, TypeThread)
		out <- runResult{res, err}
	}()
	return out
}

func (h *harness) click(t *testing.T, content, label string) {
	t.Helper()
	r := h.api.Await(t, content)
	if got := h.engine.Collector().DispatchComponent(inquirertest.Click(r.Button(t, label).CustomID, actorID)); got != inquirer.Delivered {
		t.Fatalf("click %q on %q: dispatch = %v", label, content, got)
	}
}

func (h *harness) answer(t *testing.T, content, text string) inquirertest.Render {
	t.Helper()
	r := h.api.Await(t, content)
	ch := channelID
	if r.Kind == inquirertest.Send {
		ch = r.ChannelID
	}
	if got := h.engine.Collector().DispatchMessage(inquirertest.Message(ch, actorID, text)); got != inquirer.Delivered {
		t.Fatalf("answer %q: dispatch = %v", content, got)
	}
	return r
}

func wait(t *testing.T, ch <-chan runResult) runResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("wizard did not finish")
		return runResult{}
	}
}

func (h *harness) askedForCategory() bool {
	for _, r := range h.api.Renders() {
		if strings.Contains(r.Text(), "tickets.wizard.ask_name") {
			return true
		}
	}
	return false
}

func TestWizardPublicFlow(t *testing.T) {
	h := newHarness(t)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_guild")
	h.answer(t, "tickets.wizard.ask_name", "Support")
	h.answer(t, "tickets.wizard.ask_description", "General help")
	h.answer(t, "tickets.wizard.ask_glyph", "🛟")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.add_more")
	h.answer(t, "tickets.wizard.ask_name", "Report")
	h.answer(t, "tickets.wizard.ask_description", "Report a member")
	h.answer(t, "tickets.wizard.ask_glyph", "<:report:42>")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.finish")

	panel := h.api.Await(t, "tickets.panel.content")
	r := wait(t, done)
	if r.err != nil {
		t.Fatalf("Configure: %v", r.err)
	}
	if r.res.Outcome != Finalized || r.res.Delivery != inquirer.Public {
		t.Fatalf("result = %+v", r.res)
	}
	if len(r.res.Categories) != 2 || r.res.Categories[1] != (Category{Name: "Report", Description: "Report a member", Glyph: "<:report:42>"}) {
		t.Errorf("categories = %+v", r.res.Categories)
	}

	if panel.ChannelID != panelChan {
		t.Errorf("panel posted to %s", panel.ChannelID)
	}
	menu := panel.Menu(t)
	if menu.CustomID != PanelCustomID || len(menu.Options) != 2 || menu.Options[1].Emoji.ID != "42" {
		t.Errorf("panel menu = %+v", menu)
	}

	saved, err := h.store.TicketPanel(context.Background(), r.res.PanelMessageID)
	if err != nil {
		t.Fatalf("panel not saved: %v", err)
	}
	if saved.GuildID != guildID || saved.CreatedBy != actorID || len(saved.Categories) != 2 {
		t.Errorf("saved panel = %+v", saved)
	}

	// answers are cleaned up in the public channel
	if n := len(h.api.Deleted()); n != 6 {
		t.Errorf("deleted %d answers, want 6", n)
	}
}

func TestWizardPrivateFlow(t *testing.T) {
	h := newHarness(t)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_dm")
	h.api.Await(t, "tickets.wizard.dm_intro")
	first := h.answer(t, "tickets.wizard.ask_name", "Support")
	if first.Kind != inquirertest.Send || first.ChannelID != inquirertest.DMChannelID(actorID) {
		t.Fatalf("private step rendered as %+v", first)
	}
	h.answer(t, "tickets.wizard.ask_description", "Help")
	h.answer(t, "tickets.wizard.ask_glyph", "🛟")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.finish")

	r := wait(t, done)
	if r.err != nil || r.res.Outcome != Finalized || r.res.Delivery != inquirer.Private {
		t.Fatalf("result = %+v, err = %v", r.res, r.err)
	}
	// only the answered continue prompt goes away; answers stay visible
	for _, d := range h.api.Deleted() {
		if strings.Contains(d, "/u") {
			t.Errorf("private answer deleted: %s", d)
		}
	}
}

func TestWizardDMClosedTwiceStops(t *testing.T) {
	h := newHarness(t)
	dm := inquirertest.DMChannelID(actorID)
	h.api.FailSends(dm, inquirertest.ErrClosedDM, inquirertest.ErrClosedDM)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_dm")
	retry := h.api.Await(t, "tickets.wizard.dm_closed_retry")
	if !strings.Contains(retry.Text(), "<t:") {
		t.Errorf("retry notice has no countdown: %q", retry.Text())
	}
	if ids := retry.CustomIDs(); len(ids) != 1 {
		t.Errorf("retry offers %d choices, want only Public", len(ids))
	}

	r := wait(t, done)
	if r.err != nil {
		t.Fatalf("Configure: %v", r.err)
	}
	if r.res.Outcome != DMUnavailable || len(r.res.Categories) != 0 {
		t.Fatalf("result = %+v", r.res)
	}
	if h.askedForCategory() {
		t.Error("category step ran after the DM fallback failed")
	}
	renders := h.api.Renders()
	if last := renders[len(renders)-1]; !strings.Contains(last.Text(), "tickets.wizard.dm_still_closed") {
		t.Errorf("last render = %q", last.Text())
	}
}

func TestWizardDMOpensOnRetry(t *testing.T) {
	h := newHarness(t)
	h.api.FailSends(inquirertest.DMChannelID(actorID), inquirertest.ErrClosedDM)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_dm")
	h.api.Await(t, "tickets.wizard.dm_closed_retry")
	// the retry prompt times out, then the second probe succeeds
	step := h.answer(t, "tickets.wizard.ask_name", "Support")
	if step.Kind != inquirertest.Send {
		t.Fatalf("after retry the wizard is not in DMs: %+v", step)
	}
	h.answer(t, "tickets.wizard.ask_description", "Help")
	h.answer(t, "tickets.wizard.ask_glyph", "🛟")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.finish")

	r := wait(t, done)
	if r.err != nil || r.res.Delivery != inquirer.Private {
		t.Fatalf("result = %+v, err = %v", r.res, r.err)
	}
}

func TestWizardFallsBackToPublicOnExplicitChoice(t *testing.T) {
	h := newHarness(t, WithRetryTimeout(5*time.Second))
	h.api.FailSends(inquirertest.DMChannelID(actorID), inquirertest.ErrClosedDM)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_dm")
	h.click(t, "tickets.wizard.dm_closed_retry", "tickets.wizard.context_guild")
	step := h.answer(t, "tickets.wizard.ask_name", "Support")
	if step.Kind != inquirertest.ReplyEdit {
		t.Fatalf("expected public rendering, got %+v", step)
	}
	h.answer(t, "tickets.wizard.ask_description", "Help")
	h.answer(t, "tickets.wizard.ask_glyph", "🛟")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.finish")

	if r := wait(t, done); r.err != nil || r.res.Delivery != inquirer.Public {
		t.Fatalf("result = %+v, err = %v", r.res, r.err)
	}
}

func TestWizardStepTimeout(t *testing.T) {
	h := newHarness(t, WithAnswerTimeout(30*time.Millisecond))
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_guild")

	r := wait(t, done)
	if r.err != nil {
		t.Fatalf("timeout surfaced as error: %v", r.err)
	}
	if r.res.Outcome != TimedOut || r.res.Categories != nil {
		t.Fatalf("result = %+v", r.res)
	}
	if len(h.store.panels) != 0 {
		t.Error("panel saved after timeout")
	}
	h.api.Await(t, "tickets.wizard.timed_out")
}

func TestConfigureRejectsUnsupportedType(t *testing.T) {
	h := newHarness(t)
	_, err := h.wizard.Configure(context.Background(), h.it, keys{}, panelChan, TypeVoice)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("err = %v", err)
	}
	if len(h.api.Renders()) != 0 {
		t.Error("rendered for an unsupported type")
	}
}

func TestWizardAsksAgainForUnusableAnswers(t *testing.T) {
	h := newHarness(t)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_guild")
	h.answer(t, "tickets.wizard.ask_name", "   ")
	h.answer(t, "tickets.wizard.invalid_name", "Support")
	h.answer(t, "tickets.wizard.ask_description", "General help")
	h.answer(t, "tickets.wizard.ask_glyph", "not an emoji at all")
	h.answer(t, "tickets.wizard.invalid_glyph", "🛟")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.finish")

	r := wait(t, done)
	if r.err != nil {
		t.Fatalf("Configure: %v", r.err)
	}
	want := Category{Name: "Support", Description: "General help", Glyph: "🛟"}
	if len(r.res.Categories) != 1 || r.res.Categories[0] != want {
		t.Fatalf("categories = %+v", r.res.Categories)
	}
}

func TestWizardPanelPostFailure(t *testing.T) {
	h := newHarness(t)
	h.api.FailSends(panelChan, errors.New("missing access"))
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_guild")
	h.answer(t, "tickets.wizard.ask_name", "Support")
	h.answer(t, "tickets.wizard.ask_description", "Help")
	h.answer(t, "tickets.wizard.ask_glyph", "🛟")
	h.click(t, "tickets.wizard.continue", "tickets.wizard.finish")

	r := wait(t, done)
	if r.err == nil || !strings.Contains(r.err.Error(), "post ticket panel") {
		t.Fatalf("err = %v", r.err)
	}
	for _, render := range h.api.Renders() {
		if strings.Contains(render.Text(), "tickets.wizard.finished") {
			t.Fatal("reported success before the panel was posted")
		}
	}
	if len(h.store.panels) != 0 {
		t.Error("panel saved without a message")
	}
	h.api.Await(t, "tickets.wizard.panel_failed")
}

func TestWizardRetryPromptErrorIsFatal(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("reply edit failed")
	h.api.FailSends(inquirertest.DMChannelID(actorID), inquirertest.ErrClosedDM)
	h.api.FailReplyEdits("tickets.wizard.dm_closed_retry", boom)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_dm")

	r := wait(t, done)
	if !errors.Is(r.err, boom) || !strings.Contains(r.err.Error(), "dm retry prompt") {
		t.Fatalf("err = %v", r.err)
	}
	if r.res != nil {
		t.Errorf("result = %+v", r.res)
	}
	if h.askedForCategory() {
		t.Error("category step ran after the retry prompt failed")
	}
}

func TestWizardStopsAtMaxCategories(t *testing.T) {
	h := newHarness(t)
	done := h.run()

	h.click(t, "tickets.wizard.ask_context", "tickets.wizard.context_guild")
	for i := 1; i <= MaxCategories; i++ {
		h.answer(t, "tickets.wizard.ask_name", fmt.Sprintf("Category %d", i))
		h.answer(t, "tickets.wizard.ask_description", "Help")
		h.answer(t, "tickets.wizard.ask_glyph", "🛟")
		if i < MaxCategories {
			h.click(t, "tickets.wizard.continue", "tickets.wizard.add_more")
		}
	}
	h.api.Await(t, fmt.Sprintf("tickets.wizard.limit_reached %d", MaxCategories))
	panel := h.api.Await(t, "tickets.panel.content")

	r := wait(t, done)
	if r.err != nil || r.res.Outcome != Finalized || len(r.res.Categories) != MaxCategories {
		t.Fatalf("result = %+v, err = %v", r.res, r.err)
	}
	if n := len(panel.Menu(t).Options); n != MaxCategories {
		t.Errorf("panel has %d options", n)
	}
	for _, render := range h.api.Renders() {
		if strings.Contains(render.Text(), "tickets.wizard.continue Category 25") {
			t.Error("offered to continue past the limit")
		}
	}
}
