package price

import (
	"context"

	"FarmBot/entity"
)

// Core defines the repository operations the price handlers need.
type Core interface {
	CreateMarketPrice(ctx context.Context, price *entity.MarketPrice) (*entity.MarketPrice, error)
	ListMarketPrices(ctx context.Context, cropName string, limit int) ([]entity.MarketPrice, error)
}

// EventPublisher pushes the price to the dashboard feed. Optional.
type EventPublisher interface {
	PriceAdded(price entity.MarketPrice)
}
