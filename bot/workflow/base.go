package workflow

import (
	"context"

	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// BaseStep provides no-op defaults for the Step handlers. Flow steps
// embed it and override only the handlers they care about.
type BaseStep struct {
	StepID StepID
}

func (s *BaseStep) ID() StepID {
	return s.StepID
}

func (s *BaseStep) Enter(_ context.Context, _ Messenger, _ *UserState) StepResult {
	return StepResult{}
}

func (s *BaseStep) HandleMessage(_ context.Context, _ Messenger, _ *ext.Context, _ *UserState) StepResult {
	return StepResult{}
}

func (s *BaseStep) HandleCallback(_ context.Context, _ Messenger, _ *ext.Context, _ *UserState, _ string) StepResult {
	return StepResult{}
}

func (s *BaseStep) HandleContact(_ context.Context, _ Messenger, _ *ext.Context, _ *UserState) StepResult {
	return StepResult{}
}
