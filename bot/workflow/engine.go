package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// WorkflowEngine is the default implementation of the Engine interface.
// Updates for one user are serialized: a slow step handler never races
// a second message from the same farmer.
type WorkflowEngine struct {
	workflows map[WorkflowID]Workflow
	storage   StateStorage
	log       *slog.Logger

	locks sync.Map // userID -> *sync.Mutex
}

// NewWorkflowEngine creates a new workflow engine.
func NewWorkflowEngine(storage StateStorage, log *slog.Logger) *WorkflowEngine {
	return &WorkflowEngine{
		workflows: make(map[WorkflowID]Workflow),
		storage:   storage,
		log:       log,
	}
}

// RegisterWorkflow adds a workflow to the engine.
func (e *WorkflowEngine) RegisterWorkflow(w Workflow) {
	e.workflows[w.ID()] = w
	e.log.Info("registered workflow", slog.String("workflow_id", string(w.ID())))
}

func (e *WorkflowEngine) userLock(userID int64) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartWorkflow begins a new workflow for a user. When a draft already
// exists it is discarded only if the new workflow allows reentry;
// otherwise ErrWorkflowActive is returned and the draft survives.
func (e *WorkflowEngine) StartWorkflow(ctx context.Context, b Messenger, userID, chatID int64, workflowID WorkflowID, entry *EntryData) error {
	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	w, ok := e.workflows[workflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", workflowID)
	}

	exists, err := e.storage.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("checking active workflow: %w", err)
	}
	if exists && !w.AllowReentry() {
		return ErrWorkflowActive
	}

	state := NewUserState(userID, chatID, workflowID, w.InitialStep())
	state.Entry = entry

	if err := e.storage.Save(ctx, state); err != nil {
		return fmt.Errorf("saving initial state: %w", err)
	}

	step, ok := w.GetStep(w.InitialStep())
	if !ok {
		return fmt.Errorf("initial step not found: %s", w.InitialStep())
	}

	e.log.Info("starting workflow",
		slog.Int64("user_id", userID),
		slog.String("workflow_id", string(workflowID)),
		slog.String("step_id", string(w.InitialStep())),
	)

	result := step.Enter(ctx, b, state)
	return e.processResult(ctx, b, state, w, result)
}

// HandleMessage routes a message to the current workflow step.
func (e *WorkflowEngine) HandleMessage(ctx context.Context, b Messenger, c *ext.Context) error {
	return e.dispatch(ctx, b, c, func(step Step, state *UserState) StepResult {
		return step.HandleMessage(ctx, b, c, state)
	})
}

// HandleCallback routes a callback to the current workflow step.
func (e *WorkflowEngine) HandleCallback(ctx context.Context, b Messenger, c *ext.Context, data string) error {
	return e.dispatch(ctx, b, c, func(step Step, state *UserState) StepResult {
		return step.HandleCallback(ctx, b, c, state, data)
	})
}

// HandleContact routes a contact to the current workflow step.
func (e *WorkflowEngine) HandleContact(ctx context.Context, b Messenger, c *ext.Context) error {
	return e.dispatch(ctx, b, c, func(step Step, state *UserState) StepResult {
		return step.HandleContact(ctx, b, c, state)
	})
}

// dispatch loads the user's draft, finds the current step and feeds the
// update to it under the per-user lock.
func (e *WorkflowEngine) dispatch(ctx context.Context, b Messenger, c *ext.Context, handle func(Step, *UserState) StepResult) error {
	userID := c.EffectiveUser.Id

	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	state, err := e.storage.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	if state == nil {
		return nil // No active workflow
	}

	w, ok := e.workflows[state.WorkflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", state.WorkflowID)
	}

	step, ok := w.GetStep(state.CurrentStep)
	if !ok {
		return fmt.Errorf("step not found: %s", state.CurrentStep)
	}

	result := handle(step, state)
	return e.processResult(ctx, b, state, w, result)
}

// GetState retrieves the current state for a user.
func (e *WorkflowEngine) GetState(ctx context.Context, userID int64) (*UserState, error) {
	return e.storage.Load(ctx, userID)
}

// HasActiveWorkflow checks if a user has an active workflow.
func (e *WorkflowEngine) HasActiveWorkflow(ctx context.Context, userID int64) (bool, error) {
	return e.storage.Exists(ctx, userID)
}

// Cancel removes the workflow state for a user. Deleting a state that
// does not exist is not an error, so cancelling twice is harmless.
func (e *WorkflowEngine) Cancel(ctx context.Context, userID int64) error {
	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	return e.storage.Delete(ctx, userID)
}

// processResult handles the result of a step handler. Enter results
// feed back in here, so a step whose Enter returns NextStep chains
// straight through without waiting for input.
func (e *WorkflowEngine) processResult(ctx context.Context, b Messenger, state *UserState, w Workflow, result StepResult) error {
	if result.Error != nil {
		e.log.Error("step error",
			slog.Int64("user_id", state.UserID),
			slog.String("step_id", string(state.CurrentStep)),
			slog.String("error", result.Error.Error()),
		)
		return result.Error
	}

	if result.UpdateState != nil {
		state.MergeData(result.UpdateState)
	}
	state.UpdatedAt = time.Now()

	// A completed workflow has already performed its single write;
	// the draft is gone afterwards no matter what.
	if result.Complete {
		e.log.Info("workflow completed",
			slog.Int64("user_id", state.UserID),
			slog.String("workflow_id", string(state.WorkflowID)),
		)
		return e.storage.Delete(ctx, state.UserID)
	}

	if result.NextStep != "" && result.NextStep != state.CurrentStep {
		state.CurrentStep = result.NextStep

		if err := e.storage.Save(ctx, state); err != nil {
			return fmt.Errorf("saving state after transition: %w", err)
		}

		step, ok := w.GetStep(result.NextStep)
		if !ok {
			return fmt.Errorf("next step not found: %s", result.NextStep)
		}

		e.log.Debug("transitioning to step",
			slog.Int64("user_id", state.UserID),
			slog.String("step_id", string(result.NextStep)),
		)

		next := step.Enter(ctx, b, state)
		return e.processResult(ctx, b, state, w, next)
	}

	// No transition: keep the draft and wait for the next input.
	return e.storage.Save(ctx, state)
}
