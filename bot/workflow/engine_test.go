package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// --- Fakes ---

type sentMessage struct {
	chatID int64
	text   string
}

type fakeMessenger struct {
	sent []sentMessage
}

func (m *fakeMessenger) SendMessage(chatId int64, text string, _ *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error) {
	m.sent = append(m.sent, sentMessage{chatID: chatId, text: text})
	return &tgbotapi.Message{MessageId: int64(len(m.sent))}, nil
}

type fakeStep struct {
	BaseStep
	enter     func(state *UserState) StepResult
	onMessage func(state *UserState, text string) StepResult
	entered   int
}

func (s *fakeStep) Enter(_ context.Context, _ Messenger, state *UserState) StepResult {
	s.entered++
	if s.enter == nil {
		return StepResult{}
	}
	return s.enter(state)
}

func (s *fakeStep) HandleMessage(_ context.Context, _ Messenger, c *ext.Context, state *UserState) StepResult {
	if s.onMessage == nil {
		return StepResult{}
	}
	return s.onMessage(state, c.EffectiveMessage.Text)
}

type fakeWorkflow struct {
	id      WorkflowID
	initial StepID
	steps   map[StepID]Step
	reentry bool
}

func (w *fakeWorkflow) ID() WorkflowID          { return w.id }
func (w *fakeWorkflow) InitialStep() StepID     { return w.initial }
func (w *fakeWorkflow) AllowReentry() bool      { return w.reentry }
func (w *fakeWorkflow) GetStep(id StepID) (Step, bool) {
	s, ok := w.steps[id]
	return s, ok
}
func (w *fakeWorkflow) Steps() []Step {
	out := make([]Step, 0, len(w.steps))
	for _, s := range w.steps {
		out = append(out, s)
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCtx(userID, chatID int64, text string) *ext.Context {
	return &ext.Context{
		Update:           &tgbotapi.Update{},
		EffectiveMessage: &tgbotapi.Message{Text: text, Chat: tgbotapi.Chat{Id: chatID}},
		EffectiveChat:    &tgbotapi.Chat{Id: chatID},
		EffectiveUser:    &tgbotapi.User{Id: userID},
	}
}

// --- Tests ---

func TestStartWorkflow_EnterChainsThroughSteps(t *testing.T) {
	// The first step decides it needs no input and hands straight over
	// to the second; the user should land on step two with one start.
	first := &fakeStep{BaseStep: BaseStep{StepID: "first"}, enter: func(_ *UserState) StepResult {
		return StepResult{NextStep: "second", UpdateState: map[string]any{"seed": "v"}}
	}}
	second := &fakeStep{BaseStep: BaseStep{StepID: "second"}}
	w := &fakeWorkflow{id: "chain", initial: "first", reentry: true, steps: map[StepID]Step{
		"first": first, "second": second,
	}}

	storage := NewMemoryStateStorage()
	engine := NewWorkflowEngine(storage, testLogger())
	engine.RegisterWorkflow(w)

	if err := engine.StartWorkflow(context.Background(), &fakeMessenger{}, 1, 10, "chain", nil); err != nil {
		t.Fatalf("StartWorkflow: %v", err)
	}

	state, err := storage.Load(context.Background(), 1)
	if err != nil || state == nil {
		t.Fatalf("Load after start: %v, %v", state, err)
	}
	if state.CurrentStep != "second" {
		t.Errorf("CurrentStep = %s, want second", state.CurrentStep)
	}
	if state.GetString("seed") != "v" {
		t.Error("UpdateState from the chained Enter was lost")
	}
	if second.entered != 1 {
		t.Errorf("second step entered %d times, want 1", second.entered)
	}
}

func TestHandleMessage_RetryKeepsDraft(t *testing.T) {
	step := &fakeStep{BaseStep: BaseStep{StepID: "ask"}, onMessage: func(_ *UserState, _ string) StepResult {
		return StepResult{} // invalid input, stay put
	}}
	w := &fakeWorkflow{id: "retry", initial: "ask", reentry: true, steps: map[StepID]Step{"ask": step}}

	storage := NewMemoryStateStorage()
	engine := NewWorkflowEngine(storage, testLogger())
	engine.RegisterWorkflow(w)

	ctx := context.Background()
	if err := engine.StartWorkflow(ctx, &fakeMessenger{}, 2, 20, "retry", nil); err != nil {
		t.Fatal(err)
	}
	if err := engine.HandleMessage(ctx, &fakeMessenger{}, testCtx(2, 20, "garbage")); err != nil {
		t.Fatal(err)
	}

	state, _ := storage.Load(ctx, 2)
	if state == nil || state.CurrentStep != "ask" {
		t.Fatalf("draft lost or moved after retry: %+v", state)
	}
}

func TestHandleMessage_CompleteDeletesDraft(t *testing.T) {
	step := &fakeStep{BaseStep: BaseStep{StepID: "ask"}, onMessage: func(_ *UserState, _ string) StepResult {
		return StepResult{Complete: true}
	}}
	w := &fakeWorkflow{id: "done", initial: "ask", reentry: true, steps: map[StepID]Step{"ask": step}}

	storage := NewMemoryStateStorage()
	engine := NewWorkflowEngine(storage, testLogger())
	engine.RegisterWorkflow(w)

	ctx := context.Background()
	if err := engine.StartWorkflow(ctx, &fakeMessenger{}, 3, 30, "done", nil); err != nil {
		t.Fatal(err)
	}
	if err := engine.HandleMessage(ctx, &fakeMessenger{}, testCtx(3, 30, "ok")); err != nil {
		t.Fatal(err)
	}

	exists, _ := storage.Exists(ctx, 3)
	if exists {
		t.Error("draft survived a completed workflow")
	}
}

func TestHandleMessage_NoActiveWorkflow(t *testing.T) {
	engine := NewWorkflowEngine(NewMemoryStateStorage(), testLogger())
	if err := engine.HandleMessage(context.Background(), &fakeMessenger{}, testCtx(4, 40, "hi")); err != nil {
		t.Errorf("HandleMessage with no draft = %v, want nil", err)
	}
}

func TestStartWorkflow_ReentryRules(t *testing.T) {
	guarded := &fakeWorkflow{id: "guarded", initial: "a", reentry: false, steps: map[StepID]Step{
		"a": &fakeStep{BaseStep: BaseStep{StepID: "a"}},
	}}
	open := &fakeWorkflow{id: "open", initial: "b", reentry: true, steps: map[StepID]Step{
		"b": &fakeStep{BaseStep: BaseStep{StepID: "b"}},
	}}

	storage := NewMemoryStateStorage()
	engine := NewWorkflowEngine(storage, testLogger())
	engine.RegisterWorkflow(guarded)
	engine.RegisterWorkflow(open)

	ctx := context.Background()
	if err := engine.StartWorkflow(ctx, &fakeMessenger{}, 5, 50, "open", nil); err != nil {
		t.Fatal(err)
	}

	// A flow that refuses reentry must not clobber the active draft.
	err := engine.StartWorkflow(ctx, &fakeMessenger{}, 5, 50, "guarded", nil)
	if !errors.Is(err, ErrWorkflowActive) {
		t.Fatalf("starting guarded flow over a draft = %v, want ErrWorkflowActive", err)
	}
	state, _ := storage.Load(ctx, 5)
	if state == nil || state.WorkflowID != "open" {
		t.Fatalf("existing draft was touched: %+v", state)
	}

	// A reentrant flow takes over the abandoned draft.
	if err := engine.StartWorkflow(ctx, &fakeMessenger{}, 5, 50, "open", &EntryData{Kind: EntryCrop, ID: "c1"}); err != nil {
		t.Fatal(err)
	}
	state, _ = storage.Load(ctx, 5)
	if state.Entry == nil || state.Entry.ID != "c1" {
		t.Errorf("restart did not carry the entry payload: %+v", state.Entry)
	}
}

func TestStartWorkflow_UnknownWorkflow(t *testing.T) {
	engine := NewWorkflowEngine(NewMemoryStateStorage(), testLogger())
	if err := engine.StartWorkflow(context.Background(), &fakeMessenger{}, 6, 60, "missing", nil); err == nil {
		t.Error("starting an unregistered workflow succeeded")
	}
}

func TestCancel_Idempotent(t *testing.T) {
	w := &fakeWorkflow{id: "wf", initial: "a", reentry: true, steps: map[StepID]Step{
		"a": &fakeStep{BaseStep: BaseStep{StepID: "a"}},
	}}
	storage := NewMemoryStateStorage()
	engine := NewWorkflowEngine(storage, testLogger())
	engine.RegisterWorkflow(w)

	ctx := context.Background()
	if err := engine.StartWorkflow(ctx, &fakeMessenger{}, 7, 70, "wf", nil); err != nil {
		t.Fatal(err)
	}
	if err := engine.Cancel(ctx, 7); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := engine.Cancel(ctx, 7); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	active, _ := engine.HasActiveWorkflow(ctx, 7)
	if active {
		t.Error("workflow still active after cancel")
	}
}

func TestProcessResult_StepErrorSurfacesAndKeepsDraft(t *testing.T) {
	boom := errors.New("store down")
	step := &fakeStep{BaseStep: BaseStep{StepID: "a"}, onMessage: func(_ *UserState, _ string) StepResult {
		return StepResult{Error: boom}
	}}
	w := &fakeWorkflow{id: "wf", initial: "a", reentry: true, steps: map[StepID]Step{"a": step}}

	storage := NewMemoryStateStorage()
	engine := NewWorkflowEngine(storage, testLogger())
	engine.RegisterWorkflow(w)

	ctx := context.Background()
	if err := engine.StartWorkflow(ctx, &fakeMessenger{}, 8, 80, "wf", nil); err != nil {
		t.Fatal(err)
	}
	if err := engine.HandleMessage(ctx, &fakeMessenger{}, testCtx(8, 80, "x")); !errors.Is(err, boom) {
		t.Fatalf("HandleMessage error = %v, want the step error", err)
	}
	exists, _ := storage.Exists(ctx, 8)
	if !exists {
		t.Error("draft deleted on step error, the user cannot retry")
	}
}
