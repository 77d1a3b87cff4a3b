package expense

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
)

type fakeStore struct {
	farmer  *entity.Farmer
	crops   []entity.Crop
	created []*entity.Expense
}

func (s *fakeStore) GetFarmer(_ context.Context, _ int64) (*entity.Farmer, error) {
	return s.farmer, nil
}

func (s *fakeStore) ListCrops(_ context.Context, _ string) ([]entity.Crop, error) {
	return s.crops, nil
}

func (s *fakeStore) CreateExpense(_ context.Context, expense *entity.Expense) (*entity.Expense, error) {
	s.created = append(s.created, expense)
	out := *expense
	out.ID = "e1"
	return &out, nil
}

type fakeMessenger struct {
	texts []string
}

func (m *fakeMessenger) SendMessage(_ int64, text string, _ *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error) {
	m.texts = append(m.texts, text)
	return &tgbotapi.Message{MessageId: int64(len(m.texts))}, nil
}

func (m *fakeMessenger) saw(text string) bool {
	for _, t := range m.texts {
		if strings.Contains(t, text) {
			return true
		}
	}
	return false
}

const (
	testUser int64 = 100
	testChat int64 = 200
)

func msgCtx(text string) *ext.Context {
	return &ext.Context{
		Update:           &tgbotapi.Update{},
		EffectiveMessage: &tgbotapi.Message{Text: text, Chat: tgbotapi.Chat{Id: testChat}},
		EffectiveChat:    &tgbotapi.Chat{Id: testChat},
		EffectiveUser:    &tgbotapi.User{Id: testUser},
	}
}

func newTestEngine(store *fakeStore) *workflow.WorkflowEngine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := workflow.NewWorkflowEngine(workflow.NewMemoryStateStorage(), log)
	engine.RegisterWorkflow(NewExpenseWorkflow(store, log))
	return engine
}

func testFarmer() *entity.Farmer {
	return &entity.Farmer{ID: "f1", TelegramId: testUser, Name: "Ali", Language: entity.LangEnglish}
}

func TestExpense_LinkedToCrop(t *testing.T) {
	store := &fakeStore{
		farmer: testFarmer(),
		crops:  []entity.Crop{{ID: "c1", FarmerId: "f1", Name: "Tomatoes"}},
	}
	engine := newTestEngine(store)
	bot := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, nil); err != nil {
		t.Fatalf("StartWorkflow: %v", err)
	}

	// crop link comes first, the category question after
	state, _ := engine.GetState(ctx, testUser)
	if state.CurrentStep != StepCrop {
		t.Fatalf("flow opened on %s, want the crop question", state.CurrentStep)
	}
	if !bot.saw(i18n.T(i18n.KeyLinkCrop, entity.LangEnglish)) {
		t.Fatalf("crop prompt not sent, got %q", bot.texts)
	}

	engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionSelect, "c1"))
	state, _ = engine.GetState(ctx, testUser)
	if state.CurrentStep != StepCategory {
		t.Fatalf("after crop pick, step = %s, want category", state.CurrentStep)
	}

	engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseFertilizer))
	engine.HandleMessage(ctx, bot, msgCtx("150000"))
	if err := engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionDate, workflow.DateToday)); err != nil {
		t.Fatal(err)
	}

	if len(store.created) != 1 {
		t.Fatalf("created %d expenses, want 1", len(store.created))
	}
	e := store.created[0]
	if e.FarmerId != "f1" || e.Category != entity.ExpenseFertilizer || e.Amount != 150000 {
		t.Errorf("expense = %+v", e)
	}
	if e.CropId == nil || *e.CropId != "c1" {
		t.Errorf("crop link = %v, want c1", e.CropId)
	}
	if e.ExpenseDate.String() != entity.Today().String() {
		t.Errorf("expense date = %s, want today", e.ExpenseDate)
	}

	active, _ := engine.HasActiveWorkflow(ctx, testUser)
	if active {
		t.Error("draft survived the insert")
	}
	if !bot.saw(i18n.T(i18n.KeyExpenseSaved, entity.LangEnglish)) {
		t.Error("saved confirmation not sent")
	}
}

func TestExpense_NoCropsSkipsLink(t *testing.T) {
	store := &fakeStore{farmer: testFarmer()}
	engine := newTestEngine(store)
	bot := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, nil); err != nil {
		t.Fatal(err)
	}

	state, _ := engine.GetState(ctx, testUser)
	if state.CurrentStep != StepCategory {
		t.Fatalf("cropless farmer landed on %s, want category straight away", state.CurrentStep)
	}

	engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseTransport))
	engine.HandleMessage(ctx, bot, msgCtx("50000"))
	if err := engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionDate, workflow.DateYesterday)); err != nil {
		t.Fatal(err)
	}

	if len(store.created) != 1 {
		t.Fatalf("created %d expenses, want 1", len(store.created))
	}
	if store.created[0].CropId != nil {
		t.Errorf("crop link = %v, want none", store.created[0].CropId)
	}
}

func TestExpense_DeclinedLink(t *testing.T) {
	store := &fakeStore{
		farmer: testFarmer(),
		crops:  []entity.Crop{{ID: "c1", FarmerId: "f1", Name: "Tomatoes"}},
	}
	engine := newTestEngine(store)
	bot := &fakeMessenger{}
	ctx := context.Background()

	engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, nil)
	engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionSkip))

	state, _ := engine.GetState(ctx, testUser)
	if state.CurrentStep != StepCategory {
		t.Fatalf("after declining the link, step = %s, want category", state.CurrentStep)
	}

	engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseOther))
	engine.HandleMessage(ctx, bot, msgCtx("20000"))
	if err := engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionDate, workflow.DateToday)); err != nil {
		t.Fatal(err)
	}

	if len(store.created) != 1 || store.created[0].CropId != nil {
		t.Fatalf("expenses = %+v, want one unlinked row", store.created)
	}
}

func TestExpense_RejectsBadAmount(t *testing.T) {
	store := &fakeStore{farmer: testFarmer()}
	engine := newTestEngine(store)
	bot := &fakeMessenger{}
	ctx := context.Background()

	engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, nil)
	engine.HandleCallback(ctx, bot, msgCtx(""), workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseSeeds))

	for _, bad := range []string{"abc", "0", "-100"} {
		if err := engine.HandleMessage(ctx, bot, msgCtx(bad)); err != nil {
			t.Fatal(err)
		}
		state, _ := engine.GetState(ctx, testUser)
		if state.CurrentStep != StepAmount {
			t.Fatalf("amount %q advanced to %s", bad, state.CurrentStep)
		}
	}
	if !bot.saw(i18n.T(i18n.KeyInvalidAmount, entity.LangEnglish)) {
		t.Error("invalid amount warning not sent")
	}
}
