package workflow

import (
	"context"
	"errors"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// StepID is a unique identifier for a step within a workflow.
type StepID string

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// ErrWorkflowActive is returned by StartWorkflow when the user already
// has a draft in progress and the requested flow does not allow taking
// over.
var ErrWorkflowActive = errors.New("another workflow is active")

// Messenger is the slice of the chat transport the steps need. The
// Telegram bot client satisfies it; tests use a fake.
type Messenger interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
}

// StepResult represents the outcome of handling an event in a step.
// The zero value means: stay on the current step and wait for the next
// input (the retry path of a failed validation).
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]any
	Complete    bool
	Error       error
}

// Step defines the interface for a single workflow step.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Enter is called when the user enters this step.
	// It should send any initial messages/keyboards to the user.
	// Return a StepResult with NextStep set to auto-transition without waiting for user input.
	Enter(ctx context.Context, b Messenger, state *UserState) StepResult

	// HandleMessage processes a text message from the user.
	HandleMessage(ctx context.Context, b Messenger, c *ext.Context, state *UserState) StepResult

	// HandleCallback processes a callback query from inline keyboard buttons.
	HandleCallback(ctx context.Context, b Messenger, c *ext.Context, state *UserState, data string) StepResult

	// HandleContact processes a shared contact (phone number).
	HandleContact(ctx context.Context, b Messenger, c *ext.Context, state *UserState) StepResult
}

// Workflow defines the interface for a complete workflow.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// InitialStep returns the first step of the workflow.
	InitialStep() StepID

	// GetStep returns a step by its ID.
	GetStep(id StepID) (Step, bool)

	// Steps returns all steps in this workflow.
	Steps() []Step

	// AllowReentry reports whether starting this workflow may discard
	// a draft the user left hanging in any flow.
	AllowReentry() bool
}

// Engine manages workflow execution and state persistence.
type Engine interface {
	// RegisterWorkflow adds a workflow to the engine.
	RegisterWorkflow(w Workflow)

	// StartWorkflow begins a new workflow for a user.
	StartWorkflow(ctx context.Context, b Messenger, userID, chatID int64, workflowID WorkflowID, entry *EntryData) error

	// HandleMessage routes a message to the current workflow step.
	HandleMessage(ctx context.Context, b Messenger, c *ext.Context) error

	// HandleCallback routes a callback to the current workflow step.
	HandleCallback(ctx context.Context, b Messenger, c *ext.Context, data string) error

	// HandleContact routes a contact to the current workflow step.
	HandleContact(ctx context.Context, b Messenger, c *ext.Context) error

	// GetState retrieves the current state for a user.
	GetState(ctx context.Context, userID int64) (*UserState, error)

	// HasActiveWorkflow checks if a user has an active workflow.
	HasActiveWorkflow(ctx context.Context, userID int64) (bool, error)

	// Cancel removes the workflow state for a user. Safe to call when
	// no workflow is active.
	Cancel(ctx context.Context, userID int64) error
}

// StateStorage handles persistence of workflow states.
type StateStorage interface {
	// Save persists a user's workflow state.
	Save(ctx context.Context, state *UserState) error

	// Load retrieves a user's workflow state.
	Load(ctx context.Context, userID int64) (*UserState, error)

	// Delete removes a user's workflow state.
	Delete(ctx context.Context, userID int64) error

	// Exists checks if a user has a saved state.
	Exists(ctx context.Context, userID int64) (bool, error)
}
