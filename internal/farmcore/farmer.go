package farmcore

import (
	"context"
	"fmt"
	"net/url"

	"FarmBot/entity"
)

// GetFarmer looks a farmer up by telegram id. Returns nil without an
// error when no account exists yet.
func (s *Service) GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error) {
	params := url.Values{}
	params.Set("telegram_id", fmt.Sprintf("eq.%d", telegramId))
	params.Set("select", "*")

	var rows []entity.Farmer
	if err := s.get(ctx, "farmers", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Service) CreateFarmer(ctx context.Context, farmer *entity.Farmer) (*entity.Farmer, error) {
	var rows []entity.Farmer
	if err := s.post(ctx, "farmers", farmer, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create farmer: %w", ErrNotFound)
	}
	return &rows[0], nil
}
