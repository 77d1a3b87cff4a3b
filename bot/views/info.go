package views

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/internal/i18n"
	"FarmBot/internal/lib/sl"
)

// summaryListCap bounds the per-section detail in the weekly summary so
// a busy week does not blow past the message size limit.
const summaryListCap = 12

// upcomingWindowDays is the look-ahead used by the welcome screen.
const upcomingWindowDays = 7

// Prices renders the latest market prices.
func (v *Views) Prices(ctx context.Context, b workflow.Messenger, userId, chatId int64) error {
	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	prices, err := v.store.ListMarketPrices(ctx, "", 10)
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		_, err := b.SendMessage(chatId, i18n.T(i18n.KeyNoPrices, lang), nil)
		return err
	}

	var sb strings.Builder
	sb.WriteString(i18n.T(i18n.KeyPricesHeader, lang))
	for _, p := range prices {
		sb.WriteString(fmt.Sprintf("\n• %s: %.0f LBP/kg (%s)", p.CropName, p.PricePerKg, p.PriceDate))
	}
	_, err = b.SendMessage(chatId, sb.String(), nil)
	return err
}

// Summary renders the trailing seven day totals with the records
// behind them.
func (v *Views) Summary(ctx context.Context, b workflow.Messenger, userId, chatId int64) error {
	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	summary, err := v.store.WeeklySummary(ctx, farmer.ID)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(i18n.T(i18n.KeySummaryHeader, lang))
	sb.WriteString(fmt.Sprintf("\n\n🧾 %s: %.1f kg", i18n.T(i18n.KeyTotalHarvest, lang), summary.TotalHarvestKg))
	sb.WriteString(fmt.Sprintf("\n💸 %s: %.0f LBP", i18n.T(i18n.KeyTotalExpenses, lang), summary.TotalExpenses))
	sb.WriteString(fmt.Sprintf("\n💵 %s: %.0f LBP", i18n.T(i18n.KeyTotalPending, lang), summary.TotalPending))

	for i, h := range summary.Harvests {
		if i >= summaryListCap {
			break
		}
		sb.WriteString(fmt.Sprintf("\n🌾 %s: %.1f %s (%s)", h.CropName(), h.Quantity, h.Unit, h.HarvestDate))
	}
	for i, e := range summary.Expenses {
		if i >= summaryListCap {
			break
		}
		sb.WriteString(fmt.Sprintf("\n💸 %s: %.0f LBP (%s)", e.Category, e.Amount, e.ExpenseDate))
	}

	_, err = b.SendMessage(chatId, sb.String(), nil)
	return err
}

// Account renders the farmer's profile.
func (v *Views) Account(ctx context.Context, b workflow.Messenger, userId, chatId int64) error {
	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	text := fmt.Sprintf("%s\n👤 %s\n📱 %s\n🏡 %s",
		i18n.T(i18n.KeyAccount, lang), farmer.Name, farmer.Phone, farmer.Village)
	_, err = b.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return err
}

// WelcomeBack greets a registered farmer on /start with the reminders
// that matter this week: treatments coming due and payments still open.
func (v *Views) WelcomeBack(ctx context.Context, b workflow.Messenger, userId, chatId int64) error {
	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s! 🌾", i18n.T(i18n.KeyWelcomeBack, lang), farmer.Name))

	upcoming, err := v.store.ListUpcomingTreatments(ctx, farmer.ID, upcomingWindowDays)
	if err != nil {
		v.log.With(sl.Err(err)).Warn("loading upcoming treatments")
	} else if len(upcoming) > 0 {
		sb.WriteString("\n\n" + i18n.T(i18n.KeyUpcomingTreatments, lang))
		for _, t := range upcoming {
			if t.NextDueDate == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n• %s — %s (%s)", t.CropName(), t.ProductName, *t.NextDueDate))
		}
	}

	pending, err := v.store.ListPendingPayments(ctx, farmer.ID)
	if err != nil {
		v.log.With(sl.Err(err)).Warn("loading pending payments")
	} else if len(pending) > 0 {
		sb.WriteString("\n\n" + i18n.T(i18n.KeyPendingHeader, lang))
		for _, p := range pending {
			sb.WriteString(fmt.Sprintf("\n• %s (%s)", p.CropName(), p.ExpectedDate))
		}
	}

	_, err = b.SendMessage(chatId, sb.String(), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ReplyKeyboard(i18n.MainMenuRows(lang)),
	})
	return err
}
