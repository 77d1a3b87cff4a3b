package farmcore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"FarmBot/entity"
)

// ListMarketPrices returns the latest prices, newest first, optionally
// narrowed to one crop name.
func (s *Service) ListMarketPrices(ctx context.Context, cropName string, limit int) ([]entity.MarketPrice, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "price_date.desc")
	params.Set("limit", strconv.Itoa(limit))
	if cropName != "" {
		params.Set("crop_name", eq(cropName))
	}

	var rows []entity.MarketPrice
	if err := s.get(ctx, "market_prices", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) CreateMarketPrice(ctx context.Context, price *entity.MarketPrice) (*entity.MarketPrice, error) {
	if price.Source == "" {
		price.Source = entity.PriceSourceAdmin
	}
	var rows []entity.MarketPrice
	if err := s.post(ctx, "market_prices", price, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create market price: %w", ErrNotFound)
	}
	return &rows[0], nil
}
