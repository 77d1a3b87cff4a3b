package farmcore

import (
	"context"
	"fmt"
	"net/url"

	"FarmBot/entity"
)

// ListPendingPayments returns the farmer's open payments with the full
// deliveries -> harvests -> crops chain embedded. The store cannot
// filter across that depth, so ownership is checked here.
func (s *Service) ListPendingPayments(ctx context.Context, farmerId string) ([]entity.Payment, error) {
	params := url.Values{}
	params.Set("select", "*,deliveries(harvests(crops(*)))")
	params.Set("status", eq(entity.PaymentPending))

	var rows []entity.Payment
	if err := s.get(ctx, "payments", params, &rows); err != nil {
		return nil, err
	}

	var out []entity.Payment
	for _, p := range rows {
		if p.FarmerId() == farmerId {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListPaymentsByDelivery returns the payments linked to one delivery.
func (s *Service) ListPaymentsByDelivery(ctx context.Context, deliveryId string) ([]entity.Payment, error) {
	params := url.Values{}
	params.Set("delivery_id", eq(deliveryId))
	params.Set("select", "*")

	var rows []entity.Payment
	if err := s.get(ctx, "payments", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) CreatePendingPayment(ctx context.Context, deliveryId string, expectedDate entity.Date) (*entity.Payment, error) {
	payment := &entity.Payment{
		DeliveryId:   deliveryId,
		ExpectedDate: expectedDate,
		Status:       entity.PaymentPending,
	}
	var rows []entity.Payment
	if err := s.post(ctx, "payments", payment, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create payment: %w", ErrNotFound)
	}
	return &rows[0], nil
}

// MarkPaymentPaid closes a pending payment with the amount actually
// received.
func (s *Service) MarkPaymentPaid(ctx context.Context, paymentId string, paidAmount float64, paidDate entity.Date) (*entity.Payment, error) {
	params := url.Values{}
	params.Set("id", eq(paymentId))

	body := map[string]any{
		"paid_amount": paidAmount,
		"paid_date":   paidDate.String(),
		"status":      entity.PaymentPaid,
	}
	var rows []entity.Payment
	if err := s.patch(ctx, "payments", params, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("mark payment %s paid: %w", paymentId, ErrNotFound)
	}
	return &rows[0], nil
}
