// Package registration implements the first-contact flow: language,
// name, phone and village, ending with a created farmer account.
package registration

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "registration"
)

// Step IDs
const (
	StepLanguage workflow.StepID = "language"
	StepName     workflow.StepID = "name"
	StepPhone    workflow.StepID = "phone"
	StepVillage  workflow.StepID = "village"
	StepSave     workflow.StepID = "save"
)

// State data keys
const (
	KeyLang    = "lang"
	KeyName    = "name"
	KeyPhone   = "phone"
	KeyVillage = "village"
)

// FarmStore defines the repository operations registration needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	CreateFarmer(ctx context.Context, farmer *entity.Farmer) (*entity.Farmer, error)
}

// RegistrationWorkflow implements the registration workflow.
type RegistrationWorkflow struct {
	steps map[workflow.StepID]workflow.Step
	store FarmStore
	log   *slog.Logger
}

func NewRegistrationWorkflow(store FarmStore, log *slog.Logger) *RegistrationWorkflow {
	w := &RegistrationWorkflow{
		steps: make(map[workflow.StepID]workflow.Step),
		store: store,
		log:   log,
	}
	w.registerSteps()
	return w
}

func (w *RegistrationWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *RegistrationWorkflow) InitialStep() workflow.StepID {
	return StepLanguage
}

func (w *RegistrationWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *RegistrationWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

// AllowReentry is false: an unfinished menu flow must be cancelled
// explicitly before /start can restart registration.
func (w *RegistrationWorkflow) AllowReentry() bool {
	return false
}

func (w *RegistrationWorkflow) registerSteps() {
	w.steps[StepLanguage] = NewLanguageStep()
	w.steps[StepName] = NewNameStep()
	w.steps[StepPhone] = NewPhoneStep()
	w.steps[StepVillage] = NewVillageStep()
	w.steps[StepSave] = NewSaveStep(w.store, w.log)
}
