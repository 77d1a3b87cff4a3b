// Package addcrop implements the add-a-crop flow: name, planting date,
// optional notes, one insert.
package addcrop

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "addcrop"
)

// Step IDs
const (
	StepLoad  workflow.StepID = "load"
	StepName  workflow.StepID = "name"
	StepDate  workflow.StepID = "date"
	StepNotes workflow.StepID = "notes"
)

// State data keys
const (
	KeyLang     = "lang"
	KeyFarmerId = "farmer_id"
	KeyName     = "name"
	KeyDate     = "planting_date"
	KeyTyping   = "typing_date"
)

// FarmStore defines the repository operations this flow needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	CreateCrop(ctx context.Context, crop *entity.Crop) (*entity.Crop, error)
}

// AddCropWorkflow implements the add-crop workflow.
type AddCropWorkflow struct {
	steps map[workflow.StepID]workflow.Step
	store FarmStore
	log   *slog.Logger
}

func NewAddCropWorkflow(store FarmStore, log *slog.Logger) *AddCropWorkflow {
	w := &AddCropWorkflow{
		steps: make(map[workflow.StepID]workflow.Step),
		store: store,
		log:   log,
	}
	w.registerSteps()
	return w
}

func (w *AddCropWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *AddCropWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

func (w *AddCropWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *AddCropWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

func (w *AddCropWorkflow) AllowReentry() bool {
	return true
}

func (w *AddCropWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.store)
	w.steps[StepName] = NewNameStep()
	w.steps[StepDate] = NewDateStep()
	w.steps[StepNotes] = NewNotesStep(w.store, w.log)
}
