package expense

import (
	"context"
	"log/slog"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
	"FarmBot/internal/lib/dates"
	"FarmBot/internal/lib/sl"
)

// LoadStep resolves the farmer and chains to the crop question.
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
		NextStep: StepCrop,
		UpdateState: map[string]any{
			KeyLang:     farmer.Language,
			KeyFarmerId: farmer.ID,
		},
	}
}

// CategoryStep asks which of the four expense categories applies.
type CategoryStep struct {
	workflow.BaseStep
}

func NewCategoryStep() *CategoryStep {
	return &CategoryStep{BaseStep: workflow.BaseStep{StepID: StepCategory}}
}

func (s *CategoryStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	keyboard := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
			{
				{Text: i18n.T(i18n.KeyCatSeeds, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseSeeds)},
				{Text: i18n.T(i18n.KeyCatFertilizer, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseFertilizer)},
			},
			{
				{Text: i18n.T(i18n.KeyCatTransport, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseTransport)},
				{Text: i18n.T(i18n.KeyCatOther, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, entity.ExpenseOther)},
			},
		},
	}
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyChooseCategory, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *CategoryStep) HandleCallback(_ context.Context, _ workflow.Messenger, _ *ext.Context, _ *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSelect() {
		return workflow.StepResult{}
	}
	category := cb.SelectedID()
	switch category {
	case entity.ExpenseSeeds, entity.ExpenseFertilizer, entity.ExpenseTransport, entity.ExpenseOther:
	default:
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepAmount,
		UpdateState: map[string]any{KeyCategory: category},
	}
}

// CropStep offers to link the expense to one of the farmer's crops.
// Farmers with no crops, or those tapping the no-crop button, continue
// without a link.
type CropStep struct {
	workflow.BaseStep
	store FarmStore
}

func NewCropStep(store FarmStore) *CropStep {
	return &CropStep{BaseStep: workflow.BaseStep{StepID: StepCrop}, store: store}
}

func (s *CropStep) sendPage(b workflow.Messenger, state *workflow.UserState, crops []entity.Crop) workflow.StepResult {
	lang := state.GetString(KeyLang)

	page := ui.GetPageSlice(crops, state.Pagination.CurrentPage, ui.DefaultItemsPerPage)
	items := make([]ui.SelectableItem, 0, len(page))
	for _, crop := range page {
		items = append(items, ui.SelectableItem{ID: crop.ID, Text: "🌾 " + crop.Name})
	}

	keyboard := ui.PaginatedListWithExtra(items, state.Pagination.CurrentPage, state.Pagination.TotalPages,
		[]tgbotapi.InlineKeyboardButton{
			{Text: i18n.T(i18n.KeyNoCropLink, lang), CallbackData: workflow.BuildCallback(workflow.ActionSkip)},
		})
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyLinkCrop, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *CropStep) Enter(ctx context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	crops, err := s.store.ListCrops(ctx, state.GetString(KeyFarmerId))
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	if len(crops) == 0 {
		return workflow.StepResult{
			NextStep:    StepCategory,
			UpdateState: map[string]any{KeyHasCrop: false},
		}
	}

	state.InitPagination(len(crops), ui.DefaultItemsPerPage)
	return s.sendPage(b, state, crops)
}

func (s *CropStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
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

	if cb.IsSkip() {
		return workflow.StepResult{
			NextStep:    StepCategory,
			UpdateState: map[string]any{KeyHasCrop: false},
		}
	}
	if cb.IsSelect() {
		return workflow.StepResult{
			NextStep:    StepCategory,
			UpdateState: map[string]any{KeyHasCrop: true, KeyCropId: cb.SelectedID()},
		}
	}
	return workflow.StepResult{}
}

// AmountStep asks how much was spent.
type AmountStep struct {
	workflow.BaseStep
}

func NewAmountStep() *AmountStep {
	return &AmountStep{BaseStep: workflow.BaseStep{StepID: StepAmount}}
}

func (s *AmountStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskAmount, lang), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *AmountStep) HandleMessage(_ context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	amount, err := workflow.ParseAmount(c.EffectiveMessage.Text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidAmount, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepDate,
		UpdateState: map[string]any{KeyAmount: amount},
	}
}

// DateStep asks when the expense was paid and saves the record.
type DateStep struct {
	workflow.BaseStep
	store FarmStore
	log   *slog.Logger
}

func NewDateStep(store FarmStore, log *slog.Logger) *DateStep {
	return &DateStep{
		BaseStep: workflow.BaseStep{StepID: StepDate},
		store:    store,
		log:      log,
	}
}

func (s *DateStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	keyboard := ui.DateKeyboard(
		i18n.T(i18n.KeyToday, lang),
		i18n.T(i18n.KeyYesterday, lang),
		i18n.T(i18n.KeyPickDate, lang),
	)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyWhenExpense, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *DateStep) save(ctx context.Context, b workflow.Messenger, state *workflow.UserState, d entity.Date) workflow.StepResult {
	lang := state.GetString(KeyLang)

	expense := &entity.Expense{
		FarmerId:    state.GetString(KeyFarmerId),
		ExpenseDate: d,
		Category:    state.GetString(KeyCategory),
		Amount:      state.GetFloat(KeyAmount),
	}
	if state.GetBool(KeyHasCrop) {
		cropId := state.GetString(KeyCropId)
		expense.CropId = &cropId
	}

	if _, err := s.store.CreateExpense(ctx, expense); err != nil {
		s.log.With(sl.Err(err)).Error("creating expense")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyExpenseError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyExpenseSaved, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return workflow.StepResult{Complete: true}
}

func (s *DateStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	lang := state.GetString(KeyLang)
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsDate() {
		return workflow.StepResult{}
	}
	switch cb.DateValue() {
	case workflow.DateToday:
		return s.save(ctx, b, state, entity.Today())
	case workflow.DateYesterday:
		return s.save(ctx, b, state, entity.Today().AddDays(-1))
	case workflow.DatePick:
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyEnterDate, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{}
}

func (s *DateStep) HandleMessage(ctx context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	d, err := dates.Parse(c.EffectiveMessage.Text)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidDate, lang), nil)
		return workflow.StepResult{}
	}
	return s.save(ctx, b, state, d)
}
