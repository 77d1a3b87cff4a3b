// Package bot wires the Telegram transport: commands, menu buttons,
// contact shares and inline callbacks, routed into either the workflow
// engine or the stateless views.
package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"FarmBot/bot/views"
	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/bot/workflows/expense"
	"FarmBot/bot/workflows/harvest"
	"FarmBot/bot/workflows/registration"
	"FarmBot/bot/workflows/treatment"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
	"FarmBot/internal/lib/sl"
)

// FarmerStore is the slice of the repository the router itself needs.
type FarmerStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
}

// Advisor answers free-form farming questions. Optional; a nil advisor
// disables /ask.
type Advisor interface {
	Ask(ctx context.Context, farmer *entity.Farmer, question string) (string, error)
}

// FarmBot is the Telegram bot for farmers.
type FarmBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string

	engine  workflow.Engine
	views   *views.Views
	store   FarmerStore
	advisor Advisor
}

// NewFarmBot creates a new farm bot instance.
func NewFarmBot(botName, apiKey string, engine workflow.Engine, screens *views.Views, store FarmerStore, advisor Advisor, log *slog.Logger) (*FarmBot, error) {
	bot := &FarmBot{
		log:         log.With(sl.Module("farmbot")),
		botUsername: botName,
		engine:      engine,
		views:       screens,
		store:       store,
		advisor:     advisor,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	bot.api = api

	return bot, nil
}

// Start begins polling for updates and handling them. Blocks.
func (b *FarmBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", b.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("cancel", b.handleCancel))
	dispatcher.AddHandler(handlers.NewCommand("help", b.handleHelp))
	dispatcher.AddHandler(handlers.NewCommand("ask", b.handleAsk))
	dispatcher.AddHandler(handlers.NewCallback(anyCallback, b.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Contact, b.handleContact))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleMessage))

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("farm bot started", slog.String("username", b.botUsername))

	updater.Idle()

	return nil
}

func anyCallback(cq *tgbotapi.CallbackQuery) bool {
	return cq.Data != ""
}

// handleStart greets a registered farmer or begins registration.
func (b *FarmBot) handleStart(bot *tgbotapi.Bot, ctx *ext.Context) error {
	userID := ctx.EffectiveUser.Id
	chatID := ctx.EffectiveChat.Id

	farmer, err := b.store.GetFarmer(context.Background(), userID)
	if err != nil {
		b.log.Error("loading farmer", slog.Int64("user_id", userID), sl.Err(err))
		return err
	}
	if farmer != nil {
		return b.views.WelcomeBack(context.Background(), bot, userID, chatID)
	}

	err = b.engine.StartWorkflow(context.Background(), bot, userID, chatID, registration.WorkflowID, nil)
	if err == workflow.ErrWorkflowActive {
		_, err = bot.SendMessage(chatID, i18n.T(i18n.KeyFlowActive, entity.LangArabic), nil)
		return err
	}
	if err != nil {
		b.log.Error("failed to start registration", slog.Int64("user_id", userID), sl.Err(err))
	}
	return err
}

// handleCancel aborts whatever flow the user has in progress.
func (b *FarmBot) handleCancel(bot *tgbotapi.Bot, ctx *ext.Context) error {
	userID := ctx.EffectiveUser.Id
	chatID := ctx.EffectiveChat.Id

	if err := b.engine.Cancel(context.Background(), userID); err != nil {
		b.log.Error("cancel error", slog.Int64("user_id", userID), sl.Err(err))
		return err
	}

	lang := b.language(userID)
	_, err := bot.SendMessage(chatID, i18n.T(i18n.KeyCancelled, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: replyMenu(lang),
	})
	return err
}

func (b *FarmBot) handleHelp(bot *tgbotapi.Bot, ctx *ext.Context) error {
	lang := b.language(ctx.EffectiveUser.Id)
	_, err := bot.SendMessage(ctx.EffectiveChat.Id, i18n.T(i18n.KeyHelp, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: replyMenu(lang),
	})
	return err
}

// handleAsk forwards a question to the advisor.
func (b *FarmBot) handleAsk(bot *tgbotapi.Bot, ctx *ext.Context) error {
	userID := ctx.EffectiveUser.Id
	chatID := ctx.EffectiveChat.Id

	farmer, err := b.store.GetFarmer(context.Background(), userID)
	if err != nil {
		return err
	}
	if farmer == nil {
		_, err := bot.SendMessage(chatID, i18n.T(i18n.KeyNotRegistered, entity.LangArabic), nil)
		return err
	}
	lang := farmer.Language

	question := strings.TrimSpace(strings.TrimPrefix(ctx.EffectiveMessage.Text, "/ask"))
	if question == "" {
		_, err := bot.SendMessage(chatID, i18n.T(i18n.KeyAskAdvisor, lang), nil)
		return err
	}
	if b.advisor == nil {
		_, err := bot.SendMessage(chatID, i18n.T(i18n.KeyAdvisorError, lang), nil)
		return err
	}

	answer, err := b.advisor.Ask(context.Background(), farmer, question)
	if err != nil {
		b.log.Error("advisor error", slog.Int64("user_id", userID), sl.Err(err))
		_, serr := bot.SendMessage(chatID, i18n.T(i18n.KeyAdvisorError, lang), nil)
		return serr
	}
	_, err = bot.SendMessage(chatID, answer, nil)
	return err
}

// handleCallback answers the query, then routes by prefix: workflow
// buttons to the engine, view buttons to their screens.
func (b *FarmBot) handleCallback(bot *tgbotapi.Bot, ctx *ext.Context) error {
	data := ctx.CallbackQuery.Data
	userID := ctx.EffectiveUser.Id
	chatID := ctx.EffectiveChat.Id

	// Answer first so the client stops its spinner even when the
	// handler below fails.
	if _, err := ctx.CallbackQuery.Answer(bot, nil); err != nil {
		b.log.Warn("answering callback", slog.Int64("user_id", userID), sl.Err(err))
	}

	bg := context.Background()

	var err error
	switch {
	case workflow.IsWorkflowCallback(data):
		err = b.engine.HandleCallback(bg, bot, ctx, data)
	case strings.HasPrefix(data, views.CropsPrefix):
		err = b.views.HandleCropsCallback(bg, bot, userID, chatID, data)
	case strings.HasPrefix(data, views.PaymentsPrefix):
		err = b.views.HandlePaymentsCallback(bg, bot, userID, chatID, data)
	}
	if err != nil {
		b.log.Error("callback error",
			slog.Int64("user_id", userID),
			slog.String("data", data),
			sl.Err(err),
		)
	}
	return err
}

// handleContact feeds a shared contact to the active workflow.
func (b *FarmBot) handleContact(bot *tgbotapi.Bot, ctx *ext.Context) error {
	err := b.engine.HandleContact(context.Background(), bot, ctx)
	if err != nil {
		b.log.Error("workflow contact error",
			slog.Int64("user_id", ctx.EffectiveUser.Id),
			sl.Err(err),
		)
	}
	return err
}

// handleMessage feeds text to the active workflow, or treats it as a
// main menu press when no draft is open.
func (b *FarmBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	userID := ctx.EffectiveUser.Id
	chatID := ctx.EffectiveChat.Id
	bg := context.Background()

	hasWorkflow, err := b.engine.HasActiveWorkflow(bg, userID)
	if err != nil {
		b.log.Error("check active workflow error", sl.Err(err))
		return err
	}
	if hasWorkflow {
		err = b.engine.HandleMessage(bg, bot, ctx)
		if err != nil {
			b.log.Error("workflow message error",
				slog.Int64("user_id", userID),
				sl.Err(err),
			)
		}
		return err
	}

	return b.routeMenu(bg, bot, userID, chatID, strings.TrimSpace(ctx.EffectiveMessage.Text))
}

// routeMenu matches a message against the reply keyboard labels of both
// catalog languages.
func (b *FarmBot) routeMenu(ctx context.Context, bot *tgbotapi.Bot, userID, chatID int64, text string) error {
	key, ok := menuKey(text)
	if !ok {
		lang := b.language(userID)
		_, err := bot.SendMessage(chatID, i18n.T(i18n.KeyMainMenu, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: replyMenu(lang),
		})
		return err
	}

	switch key {
	case i18n.KeyBtnAccount:
		return b.views.Account(ctx, bot, userID, chatID)
	case i18n.KeyBtnCrops:
		return b.views.Crops(ctx, bot, userID, chatID)
	case i18n.KeyBtnPayments:
		return b.views.Payments(ctx, bot, userID, chatID)
	case i18n.KeyBtnPrices:
		return b.views.Prices(ctx, bot, userID, chatID)
	case i18n.KeyBtnSummary:
		return b.views.Summary(ctx, bot, userID, chatID)
	case i18n.KeyBtnHelp:
		lang := b.language(userID)
		_, err := bot.SendMessage(chatID, i18n.T(i18n.KeyHelp, lang), nil)
		return err
	case i18n.KeyBtnHarvest:
		return b.startFlow(ctx, bot, userID, chatID, harvest.WorkflowID)
	case i18n.KeyBtnTreatments:
		return b.startFlow(ctx, bot, userID, chatID, treatment.WorkflowID)
	case i18n.KeyBtnExpenses:
		return b.startFlow(ctx, bot, userID, chatID, expense.WorkflowID)
	}
	return nil
}

func (b *FarmBot) startFlow(ctx context.Context, bot *tgbotapi.Bot, userID, chatID int64, id workflow.WorkflowID) error {
	err := b.engine.StartWorkflow(ctx, bot, userID, chatID, id, nil)
	if err == workflow.ErrWorkflowActive {
		_, err = bot.SendMessage(chatID, i18n.T(i18n.KeyFlowActive, b.language(userID)), nil)
	}
	return err
}

// language looks up the farmer's language, defaulting to Arabic for
// anyone not registered yet.
func (b *FarmBot) language(userID int64) string {
	farmer, err := b.store.GetFarmer(context.Background(), userID)
	if err != nil || farmer == nil {
		return entity.LangArabic
	}
	return farmer.Language
}

// menuButtons maps each main menu key to its labels.
var menuButtons = []i18n.Key{
	i18n.KeyBtnAccount,
	i18n.KeyBtnCrops,
	i18n.KeyBtnHarvest,
	i18n.KeyBtnPayments,
	i18n.KeyBtnTreatments,
	i18n.KeyBtnExpenses,
	i18n.KeyBtnPrices,
	i18n.KeyBtnSummary,
	i18n.KeyBtnHelp,
}

func menuKey(text string) (i18n.Key, bool) {
	for _, key := range menuButtons {
		if text == i18n.T(key, entity.LangArabic) || text == i18n.T(key, entity.LangEnglish) {
			return key, true
		}
	}
	return "", false
}

func replyMenu(lang string) tgbotapi.ReplyKeyboardMarkup {
	return ui.ReplyKeyboard(i18n.MainMenuRows(lang))
}
