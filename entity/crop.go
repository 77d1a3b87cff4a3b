package entity

import "time"

type Crop struct {
	ID           string    `json:"id,omitempty"`
	FarmerId     string    `json:"farmer_id"`
	Name         string    `json:"name"`
	PlantingDate Date      `json:"planting_date"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}
