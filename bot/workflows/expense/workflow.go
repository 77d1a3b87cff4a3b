// Package expense implements recording a farm expense: optional crop
// link, category, amount and date.
package expense

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "expense"
)

// Step IDs
const (
	StepLoad     workflow.StepID = "load"
	StepCrop     workflow.StepID = "crop"
	StepCategory workflow.StepID = "category"
	StepAmount   workflow.StepID = "amount"
	StepDate     workflow.StepID = "date"
)

// State data keys
const (
	KeyLang     = "lang"
	KeyFarmerId = "farmer_id"
	KeyCategory = "category"
	KeyCropId   = "crop_id"
	KeyHasCrop  = "has_crop"
	KeyAmount   = "amount"
)

// FarmStore defines the repository operations this flow needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	ListCrops(ctx context.Context, farmerId string) ([]entity.Crop, error)
	CreateExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error)
}

// ExpenseWorkflow implements the record-expense workflow.
type ExpenseWorkflow struct {
	steps map[workflow.StepID]workflow.Step
	store FarmStore
	log   *slog.Logger
}

func NewExpenseWorkflow(store FarmStore, log *slog.Logger) *ExpenseWorkflow {
	w := &ExpenseWorkflow{
		steps: make(map[workflow.StepID]workflow.Step),
		store: store,
		log:   log,
	}
	w.registerSteps()
	return w
}

func (w *ExpenseWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *ExpenseWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

func (w *ExpenseWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *ExpenseWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

func (w *ExpenseWorkflow) AllowReentry() bool {
	return true
}

func (w *ExpenseWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.store)
	w.steps[StepCrop] = NewCropStep(w.store)
	w.steps[StepCategory] = NewCategoryStep()
	w.steps[StepAmount] = NewAmountStep()
	w.steps[StepDate] = NewDateStep(w.store, w.log)
}
