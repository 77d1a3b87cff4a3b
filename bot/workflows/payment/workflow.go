// Package payment implements closing a payment with the amount the
// farmer actually received. The flow is entered from the payments
// screen with either a pending payment id, or a delivered harvest that
// never got its delivery row. The latter is repaired first: a delivery
// is recorded for today and a pending payment found or created before
// the amount question.
package payment

import (
	"context"
	"log/slog"

	"FarmBot/bot/workflow"
	"FarmBot/entity"
)

const (
	WorkflowID workflow.WorkflowID = "payment"
)

// Step IDs
const (
	StepLoad   workflow.StepID = "load"
	StepAmount workflow.StepID = "amount"
)

// State data keys
const (
	KeyLang      = "lang"
	KeyFarmerId  = "farmer_id"
	KeyPaymentId = "payment_id"
)

// FarmStore defines the repository operations this flow needs.
type FarmStore interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	RecordDelivery(ctx context.Context, harvestId string, deliveryDate entity.Date, collector, market *string) (*entity.Delivery, error)
	ListPaymentsByDelivery(ctx context.Context, deliveryId string) ([]entity.Payment, error)
	CreatePendingPayment(ctx context.Context, deliveryId string, expectedDate entity.Date) (*entity.Payment, error)
	MarkPaymentPaid(ctx context.Context, paymentId string, paidAmount float64, paidDate entity.Date) (*entity.Payment, error)
}

// EventPublisher pushes record events to the dashboard feed. A nil
// publisher is fine.
type EventPublisher interface {
	PaymentRecorded(payment entity.Payment)
}

// PaymentWorkflow implements the mark-payment-paid workflow.
type PaymentWorkflow struct {
	steps  map[workflow.StepID]workflow.Step
	store  FarmStore
	events EventPublisher
	log    *slog.Logger
}

func NewPaymentWorkflow(store FarmStore, events EventPublisher, log *slog.Logger) *PaymentWorkflow {
	w := &PaymentWorkflow{
		steps:  make(map[workflow.StepID]workflow.Step),
		store:  store,
		events: events,
		log:    log,
	}
	w.registerSteps()
	return w
}

func (w *PaymentWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *PaymentWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

func (w *PaymentWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *PaymentWorkflow) Steps() []workflow.Step {
	steps := make([]workflow.Step, 0, len(w.steps))
	for _, step := range w.steps {
		steps = append(steps, step)
	}
	return steps
}

func (w *PaymentWorkflow) AllowReentry() bool {
	return true
}

func (w *PaymentWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.store, w.log)
	w.steps[StepAmount] = NewAmountStep(w.store, w.events, w.log)
}
