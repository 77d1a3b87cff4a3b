package entity

import "time"

const PriceSourceAdmin = "admin"

type MarketPrice struct {
	ID         string    `json:"id,omitempty"`
	CropName   string    `json:"crop_name"`
	PriceDate  Date      `json:"price_date"`
	PricePerKg float64   `json:"price_per_kg"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}
