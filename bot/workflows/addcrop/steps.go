package addcrop

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

// LoadStep resolves the farmer and seeds the draft, then chains on.
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
		NextStep: StepName,
		UpdateState: map[string]any{
			KeyLang:     farmer.Language,
			KeyFarmerId: farmer.ID,
		},
	}
}

// NameStep asks for the crop name, typed or picked from suggestions.
// Any non-empty name is accepted; duplicates are only rejected when
// renaming an existing crop.
type NameStep struct {
	workflow.BaseStep
}

func NewNameStep() *NameStep {
	return &NameStep{BaseStep: workflow.BaseStep{StepID: StepName}}
}

func (s *NameStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyAddCropStart, lang), nil)

	items := make([]ui.SelectableItem, 0, 3)
	for id, text := range i18n.CropSuggestions(lang) {
		items = append(items, ui.SelectableItem{ID: id, Text: text})
	}
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyOrSuggestion, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SelectionKeyboard(items),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *NameStep) HandleMessage(_ context.Context, _ workflow.Messenger, c *ext.Context, _ *workflow.UserState) workflow.StepResult {
	name := strings.TrimSpace(c.EffectiveMessage.Text)
	if name == "" {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepDate,
		UpdateState: map[string]any{KeyName: name},
	}
}

func (s *NameStep) HandleCallback(_ context.Context, _ workflow.Messenger, _ *ext.Context, _ *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSelect() {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepDate,
		UpdateState: map[string]any{KeyName: cb.SelectedID()},
	}
}

// DateStep asks when the crop was planted.
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
	b.SendMessage(state.ChatID, i18n.T(i18n.KeyWhenPlanted, lang), nil)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyChooseOption, lang), &tgbotapi.SendMessageOpts{
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
			NextStep:    StepNotes,
			UpdateState: map[string]any{KeyDate: entity.Today().String()},
		}
	case workflow.DateYesterday:
		return workflow.StepResult{
			NextStep:    StepNotes,
			UpdateState: map[string]any{KeyDate: entity.Today().AddDays(-1).String()},
		}
	case workflow.DatePick:
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyEnterDate, lang), nil)
		return workflow.StepResult{UpdateState: map[string]any{KeyTyping: true}}
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
		NextStep:    StepNotes,
		UpdateState: map[string]any{KeyDate: d.String()},
	}
}

// NotesStep asks for optional notes and performs the insert.
type NotesStep struct {
	workflow.BaseStep
	store FarmStore
	log   *slog.Logger
}

func NewNotesStep(store FarmStore, log *slog.Logger) *NotesStep {
	return &NotesStep{
		BaseStep: workflow.BaseStep{StepID: StepNotes},
		store:    store,
		log:      log,
	}
}

func (s *NotesStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskNotes, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SkipKeyboard(i18n.T(i18n.KeySkip, lang)),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *NotesStep) save(ctx context.Context, b workflow.Messenger, state *workflow.UserState, notes *string) workflow.StepResult {
	lang := state.GetString(KeyLang)

	planting, err := dates.Parse(state.GetString(KeyDate))
	if err != nil {
		return workflow.StepResult{Error: err}
	}

	crop := &entity.Crop{
		FarmerId:     state.GetString(KeyFarmerId),
		Name:         state.GetString(KeyName),
		PlantingDate: planting,
		Notes:        notes,
	}

	if _, err := s.store.CreateCrop(ctx, crop); err != nil {
		s.log.With(sl.Err(err)).Error("creating crop")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyCropAddError, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
		})
		return workflow.StepResult{Complete: true}
	}

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyCropAdded, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return workflow.StepResult{Complete: true}
}

func (s *NotesStep) HandleCallback(ctx context.Context, b workflow.Messenger, _ *ext.Context, state *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSkip() {
		return workflow.StepResult{}
	}
	return s.save(ctx, b, state, nil)
}

func (s *NotesStep) HandleMessage(ctx context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if workflow.IsSkipToken(text) {
		return s.save(ctx, b, state, nil)
	}
	return s.save(ctx, b, state, &text)
}
