package treatment

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
	"FarmBot/internal/lib/dates"
	"FarmBot/internal/lib/sl"
)

// LoadStep resolves the farmer and chains to crop selection.
type LoadStep struct {
	workflow.BaseStep
	store FarmStore
}

func NewLoadStep(store FarmStore) *LoadStep {
	return &LoadStep{BaseStep: workflow.BaseStep{StepID: StepLoad}, store: store}
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
	return workflow.StepResult{
		NextStep: StepSelect,
		UpdateState: map[string]any{
			KeyLang:     farmer.Language,
			KeyFarmerId: farmer.ID,
		},
	}
}

// SelectStep lets the farmer pick which crop was treated.
type SelectStep struct {
	workflow.BaseStep
	store FarmStore
}

func NewSelectStep(store FarmStore) *SelectStep {
	return &SelectStep{BaseStep: workflow.BaseStep{StepID: StepSelect}, store: store}
}

func (s *SelectStep) sendPage(b workflow.Messenger, state *workflow.UserState, crops []entity.Crop) workflow.StepResult {
	lang := state.GetString(KeyLang)

	page := ui.GetPageSlice(crops, state.Pagination.CurrentPage, ui.DefaultItemsPerPage)
	items := make([]ui.SelectableItem, 0, len(page))
	for _, crop := range page {
		items = append(items, ui.SelectableItem{ID: crop.ID, Text: "🌾 " + crop.Name})
	}

	keyboard := ui.PaginatedList(items, state.Pagination.CurrentPage, state.Pagination.TotalPages)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyChooseCrop, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *SelectStep) Enter(ctx context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)

	crops, err := s.store.ListCrops(ctx, state.GetString(KeyFarmerId))
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	if len(crops) == 0 {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyNoCropsAddFirst, lang), nil)
		return workflow.StepResult{Complete: true}
	}

	state.InitPagination(len(crops), ui.DefaultItemsPerPage)
	return s.sendPage(b, state, crops)
}

func (s *SelectStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil {
		return workflow.StepResult{}
	}

	if cb.IsPage() {
		crops, err := s.store.ListCrops(ctx, state.GetString(KeyFarmerId))
		if err != nil {
			return workflow.StepResult{Error: err}
		}
		if page := cb.PageNumber(); page >= 1 && page <= state.Pagination.TotalPages {
			state.Pagination.CurrentPage = page
		}
		return s.sendPage(b, state, crops)
	}

	if cb.IsSelect() {
		return workflow.StepResult{
			NextStep:    StepProduct,
			UpdateState: map[string]any{KeyCropId: cb.SelectedID()},
		}
	}
	return workflow.StepResult{}
}

// ProductStep asks for the product name.
type ProductStep struct {
	workflow.BaseStep
}

func NewProductStep() *ProductStep {
	return &ProductStep{BaseStep: workflow.BaseStep{StepID: StepProduct}}
}

func (s *ProductStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskProduct, lang), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *ProductStep) HandleMessage(_ context.Context, _ workflow.Messenger, c *ext.Context, _ *workflow.UserState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if text == "" {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepDate,
		UpdateState: map[string]any{KeyProduct: text},
	}
}

// DateStep asks when the treatment was applied.
type DateStep struct {
	workflow.BaseStep
}

func NewDateStep() *DateStep {
	return &DateStep{BaseStep: workflow.BaseStep{StepID: StepDate}}
}

func (s *DateStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	keyboard := ui.DateKeyboard(
		i18n.T(i18n.KeyToday, lang),
		i18n.T(i18n.KeyYesterday, lang),
		i18n.T(i18n.KeyPickDate, lang),
	)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyWhenTreatment, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *DateStep) HandleCallback(_ context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	lang := state.GetString(KeyLang)
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsDate() {
		return workflow.StepResult{}
	}
	switch cb.DateValue() {
	case workflow.DateToday:
		return workflow.StepResult{
			NextStep:    StepCost,
			UpdateState: map[string]any{KeyDate: entity.Today().String()},
		}
	case workflow.DateYesterday:
		return workflow.StepResult{
			NextStep:    StepCost,
			UpdateState: map[string]any{KeyDate: entity.Today().AddDays(-1).String()},
		}
	case workflow.DatePick:
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyEnterDate, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{}
}

func (s *DateStep) HandleMessage(_ context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	d, err := dates.Parse(c.EffectiveMessage.Text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidDate, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepCost,
		UpdateState: map[string]any{KeyDate: d.String()},
	}
}

// CostStep asks for the optional cost.
type CostStep struct {
	workflow.BaseStep
}

func NewCostStep() *CostStep {
	return &CostStep{BaseStep: workflow.BaseStep{StepID: StepCost}}
}

func (s *CostStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskCost, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SkipKeyboard(i18n.T(i18n.KeySkip, lang)),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *CostStep) HandleCallback(_ context.Context, _ workflow.Messenger, _ *ext.Context, _ *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSkip() {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepNextDue,
		UpdateState: map[string]any{KeyHasCost: false},
	}
}

func (s *CostStep) HandleMessage(_ context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if workflow.IsSkipToken(text) {
		return workflow.StepResult{
			NextStep:    StepNextDue,
			UpdateState: map[string]any{KeyHasCost: false},
		}
	}
	cost, err := workflow.ParseCost(text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidAmount, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepNextDue,
		UpdateState: map[string]any{KeyHasCost: true, KeyCost: cost},
	}
}

// NextDueStep asks for the optional next-due date and saves the record.
type NextDueStep struct {
	workflow.BaseStep
	store FarmStore
	log   *slog.Logger
}

func NewNextDueStep(store FarmStore, log *slog.Logger) *NextDueStep {
	return &NextDueStep{
		BaseStep: workflow.BaseStep{StepID: StepNextDue},
		store:    store,
		log:      log,
	}
}

func (s *NextDueStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskNextDue, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SkipKeyboard(i18n.T(i18n.KeySkip, lang)),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *NextDueStep) save(ctx context.Context, b workflow.Messenger, state *workflow.UserState, nextDue *entity.Date) workflow.StepResult {
	lang := state.GetString(KeyLang)

	applied, err := dates.Parse(state.GetString(KeyDate))
	if err != nil {
		return workflow.StepResult{Error: err}
	}

	treatment := &entity.Treatment{
		CropId:        state.GetString(KeyCropId),
		TreatmentDate: applied,
		ProductName:   state.GetString(KeyProduct),
		NextDueDate:   nextDue,
	}
	if state.GetBool(KeyHasCost) {
		cost := state.GetFloat(KeyCost)
		treatment.Cost = &cost
	}

	if _, err := s.store.CreateTreatment(ctx, treatment); err != nil {
		s.log.With(sl.Err(err)).Error("creating treatment")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyTreatmentError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyTreatmentSaved, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return workflow.StepResult{Complete: true}
}

func (s *NextDueStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSkip() {
		return workflow.StepResult{}
	}
	return s.save(ctx, b, state, nil)
}

func (s *NextDueStep) HandleMessage(ctx context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if workflow.IsSkipToken(text) {
		return s.save(ctx, b, state, nil)
	}
	d, err := dates.Parse(text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidDate, lang), nil)
		return workflow.StepResult{}
	}
	return s.save(ctx, b, state, &d)
}
