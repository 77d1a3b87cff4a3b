package harvest

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

// LoadStep resolves the farmer. When the flow was entered from the
// crops screen the crop id arrives as the entry payload and the select
// step is skipped.
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

	update := map[string]any{
		KeyLang:     farmer.Language,
		KeyFarmerId: farmer.ID,
	}
	if state.Entry != nil && state.Entry.Kind == workflow.EntryCrop {
		update[KeyCropId] = state.Entry.ID
		return workflow.StepResult{NextStep: StepDate, UpdateState: update}
	}
	return workflow.StepResult{NextStep: StepSelect, UpdateState: update}
}

// SelectStep lets the farmer pick which crop was harvested.
type SelectStep struct {
	workflow.BaseStep
	store FarmStore
}

func NewSelectStep(store FarmStore) *SelectStep {
	return &SelectStep{BaseStep: workflow.BaseStep{StepID: StepSelect}, store: store}
}

func (s *SelectStep) listCrops(ctx context.Context, state *workflow.UserState) ([]entity.Crop, error) {
	return s.store.ListCrops(ctx, state.GetString(KeyFarmerId))
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

	crops, err := s.listCrops(ctx, state)
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
		crops, err := s.listCrops(ctx, state)
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
			NextStep:    StepDate,
			UpdateState: map[string]any{KeyCropId: cb.SelectedID()},
		}
	}
	return workflow.StepResult{}
}

// QuantityStep asks how many kilograms were harvested.
type QuantityStep struct {
	workflow.BaseStep
}

func NewQuantityStep() *QuantityStep {
	return &QuantityStep{BaseStep: workflow.BaseStep{StepID: StepQuantity}}
}

func (s *QuantityStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskQuantity, lang), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *QuantityStep) HandleMessage(_ context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	qty, err := workflow.ParseAmount(c.EffectiveMessage.Text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidAmount, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepBranch,
		UpdateState: map[string]any{KeyQuantity: qty},
	}
}

// DateStep asks when the harvest happened.
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
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyWhenHarvest, lang), &tgbotapi.SendMessageOpts{
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
			NextStep:    StepQuantity,
			UpdateState: map[string]any{KeyDate: entity.Today().String()},
		}
	case workflow.DateYesterday:
		return workflow.StepResult{
			NextStep:    StepQuantity,
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
		NextStep:    StepQuantity,
		UpdateState: map[string]any{KeyDate: d.String()},
	}
}

// BranchStep asks whether the harvest was stored or delivered. Stored
// ends the flow with a single insert; delivered collects the collector
// and market first.
type BranchStep struct {
	workflow.BaseStep
	store  FarmStore
	events EventPublisher
	log    *slog.Logger
}

func NewBranchStep(store FarmStore, events EventPublisher, log *slog.Logger) *BranchStep {
	return &BranchStep{
		BaseStep: workflow.BaseStep{StepID: StepBranch},
		store:    store,
		events:   events,
		log:      log,
	}
}

func (s *BranchStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	keyboard := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
			{
				{Text: i18n.T(i18n.KeyStoredBtn, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, ChoiceStored)},
				{Text: i18n.T(i18n.KeyDeliveredBtn, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, ChoiceDelivered)},
			},
		},
	}
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyHarvestBranch, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *BranchStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	lang := state.GetString(KeyLang)
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSelect() {
		return workflow.StepResult{}
	}

	switch cb.SelectedID() {
	case ChoiceDelivered:
		return workflow.StepResult{NextStep: StepCollector}

	case ChoiceStored:
		harvest, err := buildHarvest(state, entity.HarvestStored)
		if err != nil {
			return workflow.StepResult{Error: err}
		}
		created, err := s.store.CreateHarvest(ctx, harvest)
		if err != nil {
			s.log.With(sl.Err(err)).Error("creating harvest")
			b.SendMessage(state.ChatID, i18n.T(i18n.KeyHarvestError, lang), &tgbotapi.SendMessageOpts{
				ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
			})
			return workflow.StepResult{Complete: true}
		}
		if s.events != nil {
			s.events.HarvestRecorded(*created)
		}
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyHarvestStored, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}
	return workflow.StepResult{}
}

// CollectorStep asks for the optional collector name.
type CollectorStep struct {
	workflow.BaseStep
}

func NewCollectorStep() *CollectorStep {
	return &CollectorStep{BaseStep: workflow.BaseStep{StepID: StepCollector}}
}

func (s *CollectorStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskCollector, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SkipKeyboard(i18n.T(i18n.KeySkip, lang)),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *CollectorStep) HandleCallback(_ context.Context, _ workflow.Messenger, _ *ext.Context, _ *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSkip() {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepMarket,
		UpdateState: map[string]any{KeyHasColl: false},
	}
}

func (s *CollectorStep) HandleMessage(_ context.Context, _ workflow.Messenger, c *ext.Context, _ *workflow.UserState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if workflow.IsSkipToken(text) {
		return workflow.StepResult{
			NextStep:    StepMarket,
			UpdateState: map[string]any{KeyHasColl: false},
		}
	}
	return workflow.StepResult{
		NextStep:    StepMarket,
		UpdateState: map[string]any{KeyHasColl: true, KeyCollector: text},
	}
}

// MarketStep asks for the optional market, then performs the delivered
// cascade: insert the harvest as delivered and record the delivery,
// which opens the pending payment.
type MarketStep struct {
	workflow.BaseStep
	store  FarmStore
	events EventPublisher
	log    *slog.Logger
}

func NewMarketStep(store FarmStore, events EventPublisher, log *slog.Logger) *MarketStep {
	return &MarketStep{
		BaseStep: workflow.BaseStep{StepID: StepMarket},
		store:    store,
		events:   events,
		log:      log,
	}
}

func (s *MarketStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskMarket, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SkipKeyboard(i18n.T(i18n.KeySkip, lang)),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *MarketStep) finish(ctx context.Context, b workflow.Messenger, state *workflow.UserState, market *string) workflow.StepResult {
	lang := state.GetString(KeyLang)

	harvest, err := buildHarvest(state, entity.HarvestDelivered)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	created, err := s.store.CreateHarvest(ctx, harvest)
	if err != nil {
		s.log.With(sl.Err(err)).Error("creating harvest")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyHarvestError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}
	if s.events != nil {
		s.events.HarvestRecorded(*created)
	}

	var collector *string
	if state.GetBool(KeyHasColl) {
		name := state.GetString(KeyCollector)
		collector = &name
	}

	delivery, err := s.store.RecordDelivery(ctx, created.ID, entity.Today(), collector, market)
	if err != nil {
		s.log.With(sl.Err(err), slog.String("harvest_id", created.ID)).Error("recording delivery")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyHarvestError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}
	if s.events != nil {
		s.events.DeliveryRecorded(*delivery)
	}

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyHarvestDelivered, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return workflow.StepResult{Complete: true}
}

func (s *MarketStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSkip() {
		return workflow.StepResult{}
	}
	return s.finish(ctx, b, state, nil)
}

func (s *MarketStep) HandleMessage(ctx context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if workflow.IsSkipToken(text) {
		return s.finish(ctx, b, state, nil)
	}
	return s.finish(ctx, b, state, &text)
}

func buildHarvest(state *workflow.UserState, status string) (*entity.Harvest, error) {
	d, err := dates.Parse(state.GetString(KeyDate))
	if err != nil {
		return nil, err
	}
	return &entity.Harvest{
		CropId:      state.GetString(KeyCropId),
		HarvestDate: d,
		Quantity:    state.GetFloat(KeyQuantity),
		Unit:        entity.HarvestUnit,
		Status:      status,
	}, nil
}
