// Package editcrop implements editing a single crop field: name,
// planting date or notes. It is entered from the crops screen with the
// crop id as the entry payload.
package editcrop

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "editcrop"
)

// Step IDs
const (
	StepLoad  workflow.StepID = "load"
	StepField workflow.StepID = "field"
	StepValue workflow.StepID = "value"
)

// State data keys
const (
	KeyLang     = "lang"
	KeyFarmerId = "farmer_id"
	KeyCropId   = "crop_id"
	KeyField    = "field"
)

// Editable fields
const (
	FieldName  = "name"
	FieldDate  = "date"
	FieldNotes = "notes"
)

// FarmStore defines the repository operations this flow needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	GetCrop(ctx context.Context, cropId string) (*entity.Crop, error)
	CropNameTaken(ctx context.Context, farmerId, name, excludeCropId string) (bool, error)
	UpdateCrop(ctx context.Context, cropId string, updates map[string]any) (*entity.Crop, error)
}

// EditCropWorkflow implements the edit-crop workflow.
type EditCropWorkflow struct {
	steps map[workflow.StepID]workflow.Step
	store FarmStore
	log   *slog.Logger
}

func NewEditCropWorkflow(store FarmStore, log *slog.Logger) *EditCropWorkflow {
	w := &EditCropWorkflow{
		steps: make(map[workflow.StepID]workflow.Step),
		store: store,
		log:   log,
	}
	w.registerSteps()
	return w
}

func (w *EditCropWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *EditCropWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

func (w *EditCropWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *EditCropWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

func (w *EditCropWorkflow) AllowReentry() bool {
	return true
}

func (w *EditCropWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.store)
	w.steps[StepField] = NewFieldStep()
	w.steps[StepValue] = NewValueStep(w.store, w.log)
}
