package views

import (
	"context"
	"fmt"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflows/payment"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
)

// Payment screen actions.
const (
	payActionPaid   = "paid"
	payActionCreate = "create"
	payActionDirect = "direct"
)

func payCallback(action, value string) string {
	return PaymentsPrefix + action + ":" + value
}

// Payments renders the pending payment list, then the reconciliation
// list of delivered harvests that lost their delivery row.
func (v *Views) Payments(ctx context.Context, b workflow.Messenger, userId, chatId int64) error {
	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	pending, err := v.store.ListPendingPayments(ctx, farmer.ID)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		if _, err := b.SendMessage(chatId, i18n.T(i18n.KeyNoPending, lang), nil); err != nil {
			return err
		}
	} else {
		if _, err := b.SendMessage(chatId, i18n.T(i18n.KeyPendingHeader, lang), nil); err != nil {
			return err
		}
		for _, p := range pending {
			text := fmt.Sprintf("🌾 %s\n📅 %s", p.CropName(), p.ExpectedDate)
			if p.ExpectedAmount > 0 {
				text += fmt.Sprintf("\n💵 %.0f LBP", p.ExpectedAmount)
			}
			keyboard := tgbotapi.InlineKeyboardMarkup{
				InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
					{
						{Text: i18n.T(i18n.KeyMarkPaidBtn, lang), CallbackData: payCallback(payActionPaid, p.ID)},
					},
				},
			}
			if _, err := b.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{ReplyMarkup: keyboard}); err != nil {
				return err
			}
		}
	}

	unlinked, err := v.store.ListUnlinkedDeliveredHarvests(ctx, farmer.ID)
	if err != nil {
		return err
	}
	if len(unlinked) == 0 {
		return nil
	}

	if _, err := b.SendMessage(chatId, i18n.T(i18n.KeyUnlinkedHeader, lang), nil); err != nil {
		return err
	}
	for _, h := range unlinked {
		text := fmt.Sprintf("🌾 %s\n📅 %s\n⚖️ %.1f %s", h.CropName(), h.HarvestDate, h.Quantity, h.Unit)
		keyboard := tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
				{
					{Text: i18n.T(i18n.KeyCreatePendingBtn, lang), CallbackData: payCallback(payActionCreate, h.ID)},
					{Text: i18n.T(i18n.KeyPaidDirectBtn, lang), CallbackData: payCallback(payActionDirect, h.ID)},
				},
			},
		}
		if _, err := b.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{ReplyMarkup: keyboard}); err != nil {
			return err
		}
	}
	return nil
}

// HandlePaymentsCallback routes a "pay:" button press.
func (v *Views) HandlePaymentsCallback(ctx context.Context, b workflow.Messenger, userId, chatId int64, data string) error {
	cb := ParseCallback(data, PaymentsPrefix)
	if cb == nil || cb.Value == "" {
		return nil
	}

	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	switch cb.Action {
	case payActionPaid:
		return v.start(ctx, b, userId, chatId, lang, payment.WorkflowID,
			&workflow.EntryData{Kind: workflow.EntryPayment, ID: cb.Value})

	case payActionCreate:
		// Recording the delivery also opens the pending payment.
		if _, err := v.store.RecordDelivery(ctx, cb.Value, entity.Today(), nil, nil); err != nil {
			_, serr := b.SendMessage(chatId, i18n.T(i18n.KeyPaymentError, lang), nil)
			if serr != nil {
				return serr
			}
			return err
		}
		_, err := b.SendMessage(chatId, i18n.T(i18n.KeyPendingCreated, lang), nil)
		return err

	case payActionDirect:
		return v.start(ctx, b, userId, chatId, lang, payment.WorkflowID,
			&workflow.EntryData{Kind: workflow.EntryHarvest, ID: cb.Value})
	}
	return nil
}
