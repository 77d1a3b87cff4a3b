// Package treatment implements logging a fertilizer or pesticide
// application against a crop, with optional cost and next-due reminder
// date.
package treatment

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "treatment"
)

// Step IDs
const (
	StepLoad    workflow.StepID = "load"
	StepSelect  workflow.StepID = "select"
	StepProduct workflow.StepID = "product"
	StepDate    workflow.StepID = "date"
	StepCost    workflow.StepID = "cost"
	StepNextDue workflow.StepID = "next_due"
)

// State data keys
const (
	KeyLang     = "lang"
	KeyFarmerId = "farmer_id"
	KeyCropId   = "crop_id"
	KeyProduct  = "product_name"
	KeyDate     = "treatment_date"
	KeyCost     = "cost"
	KeyHasCost  = "has_cost"
)

// FarmStore defines the repository operations this flow needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	ListCrops(ctx context.Context, farmerId string) ([]entity.Crop, error)
	CreateTreatment(ctx context.Context, treatment *entity.Treatment) (*entity.Treatment, error)
}

// TreatmentWorkflow implements the record-treatment workflow.
type TreatmentWorkflow struct {
	steps map[workflow.StepID]workflow.Step
	store FarmStore
	log   *slog.Logger
}

func NewTreatmentWorkflow(store FarmStore, log *slog.Logger) *TreatmentWorkflow {
	w := &TreatmentWorkflow{
		steps: make(map[workflow.StepID]workflow.Step),
		store: store,
		log:   log,
	}
	w.registerSteps()
	return w
}

func (w *TreatmentWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *TreatmentWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

func (w *TreatmentWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *TreatmentWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

func (w *TreatmentWorkflow) AllowReentry() bool {
	return true
}

func (w *TreatmentWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.store)
	w.steps[StepSelect] = NewSelectStep(w.store)
	w.steps[StepProduct] = NewProductStep()
	w.steps[StepDate] = NewDateStep()
	w.steps[StepCost] = NewCostStep()
	w.steps[StepNextDue] = NewNextDueStep(w.store, w.log)
}
