// Package views renders the stateless screens of the bot: lists and
// summaries that need no draft. Buttons on these screens either
// re-render another page or hand off to a workflow with an entry
// payload.
package views

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
	"FarmBot/internal/i18n"
)

// Callback prefixes owned by the views. Everything under "wf:" belongs
// to the workflow engine instead.
const (
	CropsPrefix    = "crops:"
	PaymentsPrefix = "pay:"
)

// FarmStore defines the repository operations the screens read from.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	ListCrops(ctx context.Context, farmerId string) ([]entity.Crop, error)
	GetCrop(ctx context.Context, cropId string) (*entity.Crop, error)
	DeleteCrop(ctx context.Context, cropId string) error
	ListPendingPayments(ctx context.Context, farmerId string) ([]entity.Payment, error)
	ListUnlinkedDeliveredHarvests(ctx context.Context, farmerId string) ([]entity.Harvest, error)
	RecordDelivery(ctx context.Context, harvestId string, deliveryDate entity.Date, collector, market *string) (*entity.Delivery, error)
	ListUpcomingTreatments(ctx context.Context, farmerId string, days int) ([]entity.Treatment, error)
	ListMarketPrices(ctx context.Context, cropName string, limit int) ([]entity.MarketPrice, error)
	WeeklySummary(ctx context.Context, farmerId string) (*entity.WeeklySummary, error)
}

// Views holds the dependencies shared by every screen.
type Views struct {
	store  FarmStore
	engine workflow.Engine
	log    *slog.Logger
}

func New(store FarmStore, engine workflow.Engine, log *slog.Logger) *Views {
	return &Views{store: store, engine: engine, log: log}
}

// Callback is a parsed view callback: "crops:manage:<id>" or
// "pay:paid:<id>".
type Callback struct {
	Action string
	Value  string
}

// ParseCallback splits view callback data after its prefix.
func ParseCallback(data, prefix string) *Callback {
	if !strings.HasPrefix(data, prefix) {
		return nil
	}
	parts := strings.SplitN(strings.TrimPrefix(data, prefix), ":", 2)
	cb := &Callback{Action: parts[0]}
	if len(parts) > 1 {
		cb.Value = parts[1]
	}
	return cb
}

// farmer loads the farmer for a screen, telling an unregistered user
// to /start first. A nil farmer with a nil error means the caller
// should stop.
func (v *Views) farmer(ctx context.Context, b workflow.Messenger, userId, chatId int64) (*entity.Farmer, error) {
	farmer, err := v.store.GetFarmer(ctx, userId)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		_, err := b.SendMessage(chatId, i18n.T(i18n.KeyNotRegistered, entity.LangArabic), nil)
		return nil, err
	}
	return farmer, nil
}

// start hands the user over to a workflow, reporting a busy draft
// instead of failing.
func (v *Views) start(ctx context.Context, b workflow.Messenger, userId, chatId int64, lang string, id workflow.WorkflowID, entry *workflow.EntryData) error {
	err := v.engine.StartWorkflow(ctx, b, userId, chatId, id, entry)
	if errors.Is(err, workflow.ErrWorkflowActive) {
		_, err = b.SendMessage(chatId, i18n.T(i18n.KeyFlowActive, lang), nil)
	}
	return err
}
