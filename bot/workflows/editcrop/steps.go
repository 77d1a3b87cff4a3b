package editcrop

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

// LoadStep resolves the farmer and the crop named by the entry payload.
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

	if state.Entry.IsEmpty() || state.Entry.Kind != workflow.EntryCrop {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyUnknownOption, farmer.Language), nil)
		return workflow.StepResult{Complete: true}
	}

	if _, err := s.store.GetCrop(ctx, state.Entry.ID); err != nil {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyError, farmer.Language), nil)
		return workflow.StepResult{Complete: true}
	}

	return workflow.StepResult{
		NextStep: StepField,
		UpdateState: map[string]any{
			KeyLang:     farmer.Language,
			KeyFarmerId: farmer.ID,
			KeyCropId:   state.Entry.ID,
		},
	}
}

// FieldStep asks which field to edit.
type FieldStep struct {
	workflow.BaseStep
}

func NewFieldStep() *FieldStep {
	return &FieldStep{BaseStep: workflow.BaseStep{StepID: StepField}}
}

func (s *FieldStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	keyboard := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
			{
				{Text: i18n.T(i18n.KeyFieldName, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, FieldName)},
				{Text: i18n.T(i18n.KeyFieldDate, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, FieldDate)},
			},
			{
				{Text: i18n.T(i18n.KeyFieldNotes, lang), CallbackData: workflow.BuildCallback(workflow.ActionSelect, FieldNotes)},
				{Text: i18n.T(i18n.KeyCancel, lang), CallbackData: workflow.BuildCallback(workflow.ActionCancel)},
			},
		},
	}
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyChooseEditField, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *FieldStep) HandleCallback(_ context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	lang := state.GetString(KeyLang)
	cb := workflow.ParseCallback(data)
	if cb == nil {
		return workflow.StepResult{}
	}
	if cb.IsCancel() {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyCancelled, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}
	if !cb.IsSelect() {
		return workflow.StepResult{}
	}
	field := cb.SelectedID()
	if field != FieldName && field != FieldDate && field != FieldNotes {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepValue,
		UpdateState: map[string]any{KeyField: field},
	}
}

// ValueStep collects the new value and performs the patch.
type ValueStep struct {
	workflow.BaseStep
	store FarmStore
	log   *slog.Logger
}

func NewValueStep(store FarmStore, log *slog.Logger) *ValueStep {
	return &ValueStep{
		BaseStep: workflow.BaseStep{StepID: StepValue},
		store:    store,
		log:      log,
	}
}

func (s *ValueStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	var prompt string
	switch state.GetString(KeyField) {
	case FieldName:
		prompt = i18n.T(i18n.KeyEnterNewName, lang)
	case FieldDate:
		prompt = i18n.T(i18n.KeyEnterNewDate, lang)
	default:
		prompt = i18n.T(i18n.KeyEnterNewNotes, lang)
	}
	_, err := b.SendMessage(state.ChatID, prompt, nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *ValueStep) HandleMessage(ctx context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	cropId := state.GetString(KeyCropId)
	text := strings.TrimSpace(c.EffectiveMessage.Text)

	var updates map[string]any
	var done i18n.Key

	switch state.GetString(KeyField) {
	case FieldName:
		taken, err := s.store.CropNameTaken(ctx, state.GetString(KeyFarmerId), text, cropId)
		if err != nil {
			b.SendMessage(state.ChatID, i18n.T(i18n.KeyError, lang), nil)
			return workflow.StepResult{}
		}
		if taken {
			b.SendMessage(state.ChatID, i18n.T(i18n.KeyCropExists, lang), nil)
			return workflow.StepResult{}
		}
		updates = map[string]any{"name": text}
		done = i18n.KeyCropNameUpdated

	case FieldDate:
		d, err := dates.Parse(text)
		if err != nil {
			b.SendMessage(state.ChatID, i18n.T(i18n.KeyInvalidDate, lang), nil)
			return workflow.StepResult{}
		}
		updates = map[string]any{"planting_date": d.String()}
		done = i18n.KeyCropDateUpdated

	default:
		if workflow.IsSkipToken(text) {
			updates = map[string]any{"notes": nil}
		} else {
			updates = map[string]any{"notes": text}
		}
		done = i18n.KeyCropNotesUpdated
	}

	if _, err := s.store.UpdateCrop(ctx, cropId, updates); err != nil {
		s.log.With(sl.Err(err), slog.String("crop_id", cropId)).Error("updating crop")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyCropUpdateError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}

	b.SendMessage(state.ChatID, i18n.T(done, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return workflow.StepResult{Complete: true}
}
