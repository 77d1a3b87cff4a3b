// Package harvest implements recording a harvest. A stored harvest is
// a single insert; a delivered one continues into the delivery cascade
// that also opens a pending payment.
package harvest

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "harvest"
)

// Step IDs
const (
	StepLoad      workflow.StepID = "load"
	StepSelect    workflow.StepID = "select"
	StepDate      workflow.StepID = "date"
	StepQuantity  workflow.StepID = "quantity"
	StepBranch    workflow.StepID = "branch"
	StepCollector workflow.StepID = "collector"
	StepMarket    workflow.StepID = "market"
)

// State data keys
const (
	KeyLang      = "lang"
	KeyFarmerId  = "farmer_id"
	KeyCropId    = "crop_id"
	KeyQuantity  = "quantity"
	KeyDate      = "harvest_date"
	KeyCollector = "collector"
	KeyHasColl   = "has_collector"
)

// Branch choices
const (
	ChoiceStored    = "stored"
	ChoiceDelivered = "delivered"
)

// FarmStore defines the repository operations this flow needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	ListCrops(ctx context.Context, farmerId string) ([]entity.Crop, error)
	CreateHarvest(ctx context.Context, harvest *entity.Harvest) (*entity.Harvest, error)
	RecordDelivery(ctx context.Context, harvestId string, deliveryDate entity.Date, collector, market *string) (*entity.Delivery, error)
}

// EventPublisher pushes record events to the dashboard feed. A nil
// publisher is fine.
type EventPublisher interface {
	HarvestRecorded(harvest entity.Harvest)
	DeliveryRecorded(delivery entity.Delivery)
}

// HarvestWorkflow implements the record-harvest workflow.
type HarvestWorkflow struct {
	steps  map[workflow.StepID]workflow.Step
	store  FarmStore
	events EventPublisher
	log    *slog.Logger
}

func NewHarvestWorkflow(store FarmStore, events EventPublisher, log *slog.Logger) *HarvestWorkflow {
	w := &HarvestWorkflow{
		steps:  make(map[workflow.StepID]workflow.Step),
		store:  store,
		events: events,
		log:    log,
	}
	w.registerSteps()
	return w
}

func (w *HarvestWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *HarvestWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

func (w *HarvestWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *HarvestWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

func (w *HarvestWorkflow) AllowReentry() bool {
	return true
}

func (w *HarvestWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.store)
	w.steps[StepSelect] = NewSelectStep(w.store)
	w.steps[StepQuantity] = NewQuantityStep()
	w.steps[StepDate] = NewDateStep()
	w.steps[StepBranch] = NewBranchStep(w.store, w.events, w.log)
	w.steps[StepCollector] = NewCollectorStep()
	w.steps[StepMarket] = NewMarketStep(w.store, w.events, w.log)
}
