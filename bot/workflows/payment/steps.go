package payment

import (
	"context"
	"log/slog"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
	"FarmBot/internal/lib/sl"
)

// LoadStep resolves the farmer and the payment to close. A harvest
// entry means the delivery row is missing and is recorded on the spot.
type LoadStep struct {
	workflow.BaseStep
	store FarmStore
	log   *slog.Logger
}

func NewLoadStep(store FarmStore, log *slog.Logger) *LoadStep {
	return &LoadStep{BaseStep: workflow.BaseStep{StepID: StepLoad}, store: store, log: log}
}

func (s *LoadStep) Enter(ctx context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	farmer, err := s.store.GetFarmer(ctx, state.UserID)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	if farmer == nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyNotRegistered, entity.LangArabic), nil)
		return workflow.StepResult{Complete: true}
	}
	lang := farmer.Language

	if state.Entry.IsEmpty() {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyUnknownOption, lang), nil)
		return workflow.StepResult{Complete: true}
	}

	update := map[string]any{
		KeyLang:     lang,
		KeyFarmerId: farmer.ID,
	}

	switch state.Entry.Kind {
	case workflow.EntryPayment:
		update[KeyPaymentId] = state.Entry.ID
		return workflow.StepResult{NextStep: StepAmount, UpdateState: update}

	case workflow.EntryHarvest:
		payment, err := s.repairHarvest(ctx, state.Entry.ID)
		if err != nil {
			s.log.With(sl.Err(err), slog.String("harvest_id", state.Entry.ID)).Error("repairing unlinked harvest")
			b.SendMessage(state.ChatID, i18n.T(i18n.KeyPaymentError, lang), &tgbotapi.SendMessageOpts{
				ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
			})
			return workflow.StepResult{Complete: true}
		}
		update[KeyPaymentId] = payment.ID
		return workflow.StepResult{NextStep: StepAmount, UpdateState: update}
	}

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyUnknownOption, lang), nil)
	return workflow.StepResult{Complete: true}
}

// repairHarvest records the missing delivery for a delivered harvest
// and returns a pending payment for it, reusing one if the delivery
// insert already opened it.
func (s *LoadStep) repairHarvest(ctx context.Context, harvestId string) (*entity.Payment, error) {
	delivery, err := s.store.RecordDelivery(ctx, harvestId, entity.Today(), nil, nil)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByDelivery(ctx, delivery.ID)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].Status == entity.PaymentPending {
			return &payments[i], nil
		}
	}
	return s.store.CreatePendingPayment(ctx, delivery.ID, delivery.DeliveryDate.AddDays(7))
}

// AmountStep asks for the paid amount and closes the payment.
type AmountStep struct {
	workflow.BaseStep
	store  FarmStore
	events EventPublisher
	log    *slog.Logger
}

func NewAmountStep(store FarmStore, events EventPublisher, log *slog.Logger) *AmountStep {
	return &AmountStep{
		BaseStep: workflow.BaseStep{StepID: StepAmount},
		store:    store,
		events:   events,
		log:      log,
	}
}

func (s *AmountStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskPaidAmount, lang), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *AmountStep) HandleMessage(ctx context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)

	amount, err := workflow.ParseAmount(c.EffectiveMessage.Text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidAmount, lang), nil)
		return workflow.StepResult{}
	}

	paymentId := state.GetString(KeyPaymentId)
	paid, err := s.store.MarkPaymentPaid(ctx, paymentId, amount, entity.Today())
	if err != nil {
		s.log.With(sl.Err(err), slog.String("payment_id", paymentId)).Error("marking payment paid")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyPaymentError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}
	if s.events != nil {
		s.events.PaymentRecorded(*paid)
	}

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyPaymentSaved, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return workflow.StepResult{Complete: true}
}
