package payment

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

type pendingCall struct {
	deliveryId   string
	expectedDate entity.Date
}

type paidCall struct {
	paymentId string
	amount    float64
	date      entity.Date
}

type fakeStore struct {
	farmer   *entity.Farmer
	payments []entity.Payment

	pendingCalls []pendingCall
	paidCalls    []paidCall
}

func (s *fakeStore) GetFarmer(_ context.Context, _ int64) (*entity.Farmer, error) {
	return s.farmer, nil
}

func (s *fakeStore) RecordDelivery(_ context.Context, harvestId string, deliveryDate entity.Date, _, _ *string) (*entity.Delivery, error) {
	return &entity.Delivery{ID: "d1", HarvestId: harvestId, DeliveryDate: deliveryDate}, nil
}

func (s *fakeStore) ListPaymentsByDelivery(_ context.Context, _ string) ([]entity.Payment, error) {
	return s.payments, nil
}

func (s *fakeStore) CreatePendingPayment(_ context.Context, deliveryId string, expectedDate entity.Date) (*entity.Payment, error) {
	s.pendingCalls = append(s.pendingCalls, pendingCall{deliveryId, expectedDate})
	return &entity.Payment{ID: "p1", DeliveryId: deliveryId, ExpectedDate: expectedDate, Status: entity.PaymentPending}, nil
}

func (s *fakeStore) MarkPaymentPaid(_ context.Context, paymentId string, paidAmount float64, paidDate entity.Date) (*entity.Payment, error) {
	s.paidCalls = append(s.paidCalls, paidCall{paymentId, paidAmount, paidDate})
	return &entity.Payment{ID: paymentId, Status: entity.PaymentPaid, PaidAmount: &paidAmount, PaidDate: &paidDate}, nil
}

type fakeEvents struct {
	payments []entity.Payment
}

func (e *fakeEvents) PaymentRecorded(p entity.Payment) { e.payments = append(e.payments, p) }

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

func newTestEngine(store *fakeStore, events *fakeEvents) *workflow.WorkflowEngine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := workflow.NewWorkflowEngine(workflow.NewMemoryStateStorage(), log)
	var pub EventPublisher
	if events != nil {
		pub = events
	}
	engine.RegisterWorkflow(NewPaymentWorkflow(store, pub, log))
	return engine
}

func testFarmer() *entity.Farmer {
	return &entity.Farmer{ID: "f1", TelegramId: testUser, Name: "Ali", Language: entity.LangEnglish}
}

func TestPayment_MarkExistingPaid(t *testing.T) {
	store := &fakeStore{farmer: testFarmer()}
	events := &fakeEvents{}
	engine := newTestEngine(store, events)
	bot := &fakeMessenger{}
	ctx := context.Background()

	entry := &workflow.EntryData{Kind: workflow.EntryPayment, ID: "p9"}
	if err := engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, entry); err != nil {
		t.Fatalf("StartWorkflow: %v", err)
	}
	if err := engine.HandleMessage(ctx, bot, msgCtx("450000")); err != nil {
		t.Fatal(err)
	}

	if len(store.paidCalls) != 1 {
		t.Fatalf("marked %d payments paid, want 1", len(store.paidCalls))
	}
	paid := store.paidCalls[0]
	if paid.paymentId != "p9" || paid.amount != 450000 {
		t.Errorf("paid call = %+v", paid)
	}
	if paid.date.String() != entity.Today().String() {
		t.Errorf("paid date = %s, want today", paid.date)
	}
	if len(store.pendingCalls) != 0 {
		t.Error("existing payment path still opened a pending row")
	}
	if len(events.payments) != 1 {
		t.Errorf("published %d payment events, want 1", len(events.payments))
	}

	active, _ := engine.HasActiveWorkflow(ctx, testUser)
	if active {
		t.Error("draft survived the paid update")
	}
	if !bot.saw(i18n.T(i18n.KeyPaymentSaved, entity.LangEnglish)) {
		t.Error("saved confirmation not sent")
	}
}

func TestPayment_RepairOpensPendingWeekOut(t *testing.T) {
	// The repaired delivery keeps the expected-date rule: a week after
	// the delivery date.
	store := &fakeStore{farmer: testFarmer()}
	engine := newTestEngine(store, nil)
	bot := &fakeMessenger{}
	ctx := context.Background()

	entry := &workflow.EntryData{Kind: workflow.EntryHarvest, ID: "h7"}
	if err := engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, entry); err != nil {
		t.Fatal(err)
	}

	if len(store.pendingCalls) != 1 {
		t.Fatalf("opened %d pending payments, want 1", len(store.pendingCalls))
	}
	pending := store.pendingCalls[0]
	if pending.deliveryId != "d1" {
		t.Errorf("pending delivery = %s", pending.deliveryId)
	}
	want := entity.Today().AddDays(7)
	if pending.expectedDate.String() != want.String() {
		t.Errorf("expected date = %s, want %s", pending.expectedDate, want)
	}

	if err := engine.HandleMessage(ctx, bot, msgCtx("300000")); err != nil {
		t.Fatal(err)
	}
	if len(store.paidCalls) != 1 || store.paidCalls[0].paymentId != "p1" {
		t.Fatalf("paid calls = %+v, want the repaired payment closed", store.paidCalls)
	}
}

func TestPayment_RepairReusesPending(t *testing.T) {
	store := &fakeStore{
		farmer: testFarmer(),
		payments: []entity.Payment{
			{ID: "p2", DeliveryId: "d1", Status: entity.PaymentPending},
		},
	}
	engine := newTestEngine(store, nil)
	bot := &fakeMessenger{}
	ctx := context.Background()

	entry := &workflow.EntryData{Kind: workflow.EntryHarvest, ID: "h7"}
	if err := engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, entry); err != nil {
		t.Fatal(err)
	}

	if len(store.pendingCalls) != 0 {
		t.Errorf("opened %d pending payments next to an existing one", len(store.pendingCalls))
	}
	engine.HandleMessage(ctx, bot, msgCtx("300000"))
	if len(store.paidCalls) != 1 || store.paidCalls[0].paymentId != "p2" {
		t.Fatalf("paid calls = %+v, want the existing pending row closed", store.paidCalls)
	}
}

func TestPayment_NoEntryEndsFlow(t *testing.T) {
	store := &fakeStore{farmer: testFarmer()}
	engine := newTestEngine(store, nil)
	bot := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.StartWorkflow(ctx, bot, testUser, testChat, WorkflowID, nil); err != nil {
		t.Fatal(err)
	}

	active, _ := engine.HasActiveWorkflow(ctx, testUser)
	if active {
		t.Error("flow kept running without a payment to close")
	}
}
