package farmcore

import (
	"context"
	"fmt"
	"net/url"

	"FarmBot/entity"
)

func (s *Service) CreateHarvest(ctx context.Context, harvest *entity.Harvest) (*entity.Harvest, error) {
	if harvest.Unit == "" {
		harvest.Unit = entity.HarvestUnit
	}
	if harvest.Status == "" {
		harvest.Status = entity.HarvestStored
	}

	var rows []entity.Harvest
	if err := s.post(ctx, "harvests", harvest, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create harvest: %w", ErrNotFound)
	}
	return &rows[0], nil
}

// ListStoredHarvests returns a farmer's still-stored harvests with the
// crop rows embedded.
func (s *Service) ListStoredHarvests(ctx context.Context, farmerId string) ([]entity.Harvest, error) {
	params := url.Values{}
	params.Set("select", "*,crops!inner(*)")
	params.Set("status", eq(entity.HarvestStored))
	params.Set("crops.farmer_id", eq(farmerId))

	var rows []entity.Harvest
	if err := s.get(ctx, "harvests", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUnlinkedDeliveredHarvests returns harvests already marked
// delivered that never got a delivery row, so no pending payment is
// tracking them. The payments view offers to repair these.
func (s *Service) ListUnlinkedDeliveredHarvests(ctx context.Context, farmerId string) ([]entity.Harvest, error) {
	params := url.Values{}
	params.Set("select", "*,crops!inner(*),deliveries(*)")
	params.Set("status", eq(entity.HarvestDelivered))
	params.Set("crops.farmer_id", eq(farmerId))

	var rows []entity.Harvest
	if err := s.get(ctx, "harvests", params, &rows); err != nil {
		return nil, err
	}

	var out []entity.Harvest
	for _, h := range rows {
		if len(h.Deliveries) == 0 {
			out = append(out, h)
		}
	}
	return out, nil
}

// RecordDelivery marks the harvest delivered, inserts the delivery row
// and opens a pending payment expected a week after the delivery date.
// The store exposes no transactions, so the three writes run in order;
// a failure part way through is repairable from the payments view.
func (s *Service) RecordDelivery(ctx context.Context, harvestId string, deliveryDate entity.Date, collector, market *string) (*entity.Delivery, error) {
	patchParams := url.Values{}
	patchParams.Set("id", eq(harvestId))
	patch := map[string]string{"status": entity.HarvestDelivered}
	if err := s.patch(ctx, "harvests", patchParams, patch, nil); err != nil {
		return nil, fmt.Errorf("record delivery: mark harvest: %w", err)
	}

	delivery := &entity.Delivery{
		HarvestId:     harvestId,
		DeliveryDate:  deliveryDate,
		CollectorName: collector,
		Market:        market,
	}
	var rows []entity.Delivery
	if err := s.post(ctx, "deliveries", delivery, &rows); err != nil {
		return nil, fmt.Errorf("record delivery: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("record delivery: %w", ErrNotFound)
	}
	created := rows[0]

	if _, err := s.CreatePendingPayment(ctx, created.ID, deliveryDate.AddDays(7)); err != nil {
		return &created, fmt.Errorf("record delivery: open payment: %w", err)
	}
	return &created, nil
}
