package summary

import (
	"context"

	"FarmBot/entity"
)

// Core defines the repository operations the summary handler needs.
type Core interface {
	GetFarmer(ctx context.Context, telegramId int64) (*entity.Farmer, error)
	WeeklySummary(ctx context.Context, farmerId string) (*entity.WeeklySummary, error)
}
