package farmcore

import (
	"context"
	"fmt"
	"net/url"

	"FarmBot/entity"
)

func (s *Service) CreateTreatment(ctx context.Context, treatment *entity.Treatment) (*entity.Treatment, error) {
	var rows []entity.Treatment
	if err := s.post(ctx, "treatments", treatment, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create treatment: %w", ErrNotFound)
	}
	return &rows[0], nil
}

// ListUpcomingTreatments returns treatments due within the window
// starting today, crop rows embedded.
func (s *Service) ListUpcomingTreatments(ctx context.Context, farmerId string, days int) ([]entity.Treatment, error) {
	today := entity.Today()
	end := today.AddDays(days)

	params := url.Values{}
	params.Set("select", "*,crops!inner(*)")
	params.Set("crops.farmer_id", eq(farmerId))
	params.Add("next_due_date", "gte."+today.String())
	params.Add("next_due_date", "lte."+end.String())

	var rows []entity.Treatment
	if err := s.get(ctx, "treatments", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
