package registration

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
	"FarmBot/internal/lib/sl"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9\s\-\(\)]{8,20}$`)

// LanguageStep asks which language the farmer wants to talk in.
type LanguageStep struct {
	workflow.BaseStep
}

func NewLanguageStep() *LanguageStep {
	return &LanguageStep{BaseStep: workflow.BaseStep{StepID: StepLanguage}}
}

func (s *LanguageStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	keyboard := ui.SelectionKeyboard([]ui.SelectableItem{
		{ID: entity.LangArabic, Text: "عربي 🇱🇧"},
		{ID: entity.LangEnglish, Text: "English 🇬🇧"},
	})
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyChooseLanguage, entity.LangArabic), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *LanguageStep) HandleCallback(_ context.Context, _ workflow.Messenger, _ *ext.Context, _ *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSelect() {
		return workflow.StepResult{}
	}
	lang := cb.SelectedID()
	if lang != entity.LangArabic && lang != entity.LangEnglish {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepName,
		UpdateState: map[string]any{KeyLang: lang},
	}
}

// NameStep collects the farmer's full name.
type NameStep struct {
	workflow.BaseStep
}

func NewNameStep() *NameStep {
	return &NameStep{BaseStep: workflow.BaseStep{StepID: StepName}}
}

func (s *NameStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskName, lang), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *NameStep) HandleMessage(_ context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	name := strings.TrimSpace(c.EffectiveMessage.Text)
	if len([]rune(name)) < 2 {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyNameTooShort, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepPhone,
		UpdateState: map[string]any{KeyName: name},
	}
}

// PhoneStep collects the phone number, shared or typed.
type PhoneStep struct {
	workflow.BaseStep
}

func NewPhoneStep() *PhoneStep {
	return &PhoneStep{BaseStep: workflow.BaseStep{StepID: StepPhone}}
}

func (s *PhoneStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	keyboard := ui.ContactRequestKeyboard(i18n.T(i18n.KeySharePhone, lang))
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskPhone, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *PhoneStep) HandleContact(_ context.Context, _ workflow.Messenger, c *ext.Context, _ *workflow.UserState) workflow.StepResult {
	contact := c.EffectiveMessage.Contact
	if contact == nil {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepVillage,
		UpdateState: map[string]any{KeyPhone: strings.TrimSpace(contact.PhoneNumber)},
	}
}

func (s *PhoneStep) HandleMessage(_ context.Context, b workflow.Messenger, c *ext.Context, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)
	phone := strings.TrimSpace(c.EffectiveMessage.Text)
	if !phoneRe.MatchString(phone) {
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyPhoneInvalid, lang), nil)
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepVillage,
		UpdateState: map[string]any{KeyPhone: phone},
	}
}

// VillageStep collects the village, typed or picked from suggestions.
type VillageStep struct {
	workflow.BaseStep
}

func NewVillageStep() *VillageStep {
	return &VillageStep{BaseStep: workflow.BaseStep{StepID: StepVillage}}
}

func (s *VillageStep) Enter(_ context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)

	b.SendMessage(state.ChatID, i18n.T(i18n.KeyAskVillage, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.RemoveKeyboard(),
	})

	items := make([]ui.SelectableItem, 0, 5)
	for _, v := range i18n.VillageSuggestions(lang) {
		items = append(items, ui.SelectableItem{ID: v, Text: v})
	}
	_, err := b.SendMessage(state.ChatID, i18n.T(i18n.KeyOrSuggestion, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SelectionKeyboard(items),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *VillageStep) HandleCallback(_ context.Context, _ workflow.Messenger, _ *ext.Context, _ *workflow.UserState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || !cb.IsSelect() {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepSave,
		UpdateState: map[string]any{KeyVillage: cb.SelectedID()},
	}
}

func (s *VillageStep) HandleMessage(_ context.Context, _ workflow.Messenger, c *ext.Context, _ *workflow.UserState) workflow.StepResult {
	village := strings.TrimSpace(c.EffectiveMessage.Text)
	if village == "" {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepSave,
		UpdateState: map[string]any{KeyVillage: village},
	}
}

// SaveStep creates the account. The single repository write of the
// flow happens here, once.
type SaveStep struct {
	workflow.BaseStep
	store FarmStore
	log   *slog.Logger
}

func NewSaveStep(store FarmStore, log *slog.Logger) *SaveStep {
	return &SaveStep{
		BaseStep: workflow.BaseStep{StepID: StepSave},
		store:    store,
		log:      log,
	}
}

func (s *SaveStep) Enter(ctx context.Context, b workflow.Messenger, state *workflow.UserState) workflow.StepResult {
	lang := state.GetString(KeyLang)

	farmer := entity.NewFarmer(
		state.UserID,
		state.GetString(KeyName),
		state.GetString(KeyPhone),
		state.GetString(KeyVillage),
		lang,
	)
	created, err := s.store.CreateFarmer(ctx, farmer)
	if err != nil {
		s.log.With(sl.Err(err)).Error("creating farmer")
		b.SendMessage(state.ChatID, i18n.T(i18n.KeyError, lang), nil)
		return workflow.StepResult{Complete: true}
	}

	s.log.Info("farmer registered",
		slog.Int64("telegram_id", created.TelegramId),
		slog.String("village", created.Village),
	)

	text := fmt.Sprintf("%s\n%s", i18n.T(i18n.KeyWelcomeDone, lang), created.Name)
	_, err = b.SendMessage(state.ChatID, text, &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Complete: true}
}
