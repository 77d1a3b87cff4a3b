package views

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"FarmBot/bot/workflow"
	"FarmBot/bot/workflow/ui"
	"FarmBot/bot/workflows/addcrop"
	"FarmBot/bot/workflows/editcrop"
	"FarmBot/bot/workflows/harvest"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
)

const cropsPerPage = 6

// Crop screen actions.
const (
	cropsActionPage    = "page"
	cropsActionManage  = "manage"
	cropsActionEdit    = "edit"
	cropsActionHarvest = "harvest"
	cropsActionDelete  = "delete"
	cropsActionWipe    = "confirm_delete"
	cropsActionAdd     = "add"
)

func cropsCallback(action string, value ...string) string {
	if len(value) > 0 {
		return CropsPrefix + action + ":" + value[0]
	}
	return CropsPrefix + action
}

// Crops renders the crop list with one manage button per crop.
func (v *Views) Crops(ctx context.Context, b workflow.Messenger, userId, chatId int64) error {
	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	return v.cropsPage(ctx, b, chatId, farmer, 1)
}

func (v *Views) cropsPage(ctx context.Context, b workflow.Messenger, chatId int64, farmer *entity.Farmer, page int) error {
	lang := farmer.Language

	crops, err := v.store.ListCrops(ctx, farmer.ID)
	if err != nil {
		return err
	}
	if len(crops) == 0 {
		keyboard := ui.SingleButtonKeyboard(i18n.T(i18n.KeyAddCropBtn, lang), cropsCallback(cropsActionAdd))
		_, err := b.SendMessage(chatId, i18n.T(i18n.KeyNoCrops, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: keyboard,
		})
		return err
	}

	totalPages := ui.CalculateTotalPages(len(crops), cropsPerPage)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, cropsPerPage+2)
	for _, crop := range ui.GetPageSlice(crops, page, cropsPerPage) {
		label := fmt.Sprintf("🌾 %s (%s)", crop.Name, crop.PlantingDate)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			{Text: label, CallbackData: cropsCallback(cropsActionManage, crop.ID)},
		})
	}
	if totalPages > 1 {
		nav := make([]tgbotapi.InlineKeyboardButton, 0, 2)
		if page > 1 {
			nav = append(nav, tgbotapi.InlineKeyboardButton{
				Text:         "⬅️",
				CallbackData: cropsCallback(cropsActionPage, strconv.Itoa(page-1)),
			})
		}
		if page < totalPages {
			nav = append(nav, tgbotapi.InlineKeyboardButton{
				Text:         "➡️",
				CallbackData: cropsCallback(cropsActionPage, strconv.Itoa(page+1)),
			})
		}
		rows = append(rows, nav)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		{Text: i18n.T(i18n.KeyAddCropBtn, lang), CallbackData: cropsCallback(cropsActionAdd)},
	})

	_, err = b.SendMessage(chatId, i18n.T(i18n.KeyYourCrops, lang), &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	return err
}

// HandleCropsCallback routes a "crops:" button press.
func (v *Views) HandleCropsCallback(ctx context.Context, b workflow.Messenger, userId, chatId int64, data string) error {
	cb := ParseCallback(data, CropsPrefix)
	if cb == nil {
		return nil
	}

	farmer, err := v.farmer(ctx, b, userId, chatId)
	if err != nil || farmer == nil {
		return err
	}
	lang := farmer.Language

	switch cb.Action {
	case cropsActionPage:
		page, err := strconv.Atoi(cb.Value)
		if err != nil {
			return nil
		}
		return v.cropsPage(ctx, b, chatId, farmer, page)

	case cropsActionAdd:
		return v.start(ctx, b, userId, chatId, lang, addcrop.WorkflowID, nil)

	case cropsActionManage:
		return v.cropManage(ctx, b, chatId, farmer, cb.Value)

	case cropsActionEdit:
		return v.start(ctx, b, userId, chatId, lang, editcrop.WorkflowID,
			&workflow.EntryData{Kind: workflow.EntryCrop, ID: cb.Value})

	case cropsActionHarvest:
		return v.start(ctx, b, userId, chatId, lang, harvest.WorkflowID,
			&workflow.EntryData{Kind: workflow.EntryCrop, ID: cb.Value})

	case cropsActionDelete:
		keyboard := tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
				{
					{Text: i18n.T(i18n.KeyYesDelete, lang), CallbackData: cropsCallback(cropsActionWipe, cb.Value)},
					{Text: i18n.T(i18n.KeyCancel, lang), CallbackData: cropsCallback(cropsActionPage, "1")},
				},
			},
		}
		_, err := b.SendMessage(chatId, i18n.T(i18n.KeyDeleteConfirm, lang), &tgbotapi.SendMessageOpts{
			ReplyMarkup: keyboard,
		})
		return err

	case cropsActionWipe:
		if err := v.store.DeleteCrop(ctx, cb.Value); err != nil {
			_, serr := b.SendMessage(chatId, i18n.T(i18n.KeyCropDeleteError, lang), nil)
			if serr != nil {
				return serr
			}
			return err
		}
		if _, err := b.SendMessage(chatId, i18n.T(i18n.KeyCropDeleted, lang), nil); err != nil {
			return err
		}
		return v.cropsPage(ctx, b, chatId, farmer, 1)
	}
	return nil
}

// cropManage renders the per-crop action screen.
func (v *Views) cropManage(ctx context.Context, b workflow.Messenger, chatId int64, farmer *entity.Farmer, cropId string) error {
	lang := farmer.Language

	crop, err := v.store.GetCrop(ctx, cropId)
	if err != nil {
		_, serr := b.SendMessage(chatId, i18n.T(i18n.KeyError, lang), nil)
		if serr != nil {
			return serr
		}
		return err
	}

	text := fmt.Sprintf("🌾 %s\n📅 %s", crop.Name, crop.PlantingDate)
	if crop.Notes != nil && *crop.Notes != "" {
		text += "\n📝 " + *crop.Notes
	}

	keyboard := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
			{
				{Text: i18n.T(i18n.KeyHarvestBtn, lang), CallbackData: cropsCallback(cropsActionHarvest, crop.ID)},
			},
			{
				{Text: i18n.T(i18n.KeyEditBtn, lang), CallbackData: cropsCallback(cropsActionEdit, crop.ID)},
				{Text: i18n.T(i18n.KeyDeleteBtn, lang), CallbackData: cropsCallback(cropsActionDelete, crop.ID)},
			},
			{
				{Text: i18n.T(i18n.KeyBack, lang), CallbackData: cropsCallback(cropsActionPage, "1")},
			},
		},
	}
	_, err = b.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
	})
	return err
}
