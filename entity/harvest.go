package entity

import "time"

const (
	HarvestStored    = "stored"
	HarvestDelivered = "delivered"

	HarvestUnit = "kg"
)

type Harvest struct {
	ID          string    `json:"id,omitempty"`
	CropId      string    `json:"crop_id"`
	HarvestDate Date      `json:"harvest_date"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitzero"`

	// populated by nested selects only
	Crop       *Crop      `json:"crops,omitempty"`
	Deliveries []Delivery `json:"deliveries,omitempty"`
}

func (h *Harvest) CropName() string {
	if h.Crop == nil {
		return ""
	}
	return h.Crop.Name
}

type Delivery struct {
	ID            string    `json:"id,omitempty"`
	HarvestId     string    `json:"harvest_id"`
	DeliveryDate  Date      `json:"delivery_date"`
	CollectorName *string   `json:"collector_name"`
	Market        *string   `json:"market"`
	CreatedAt     time.Time `json:"created_at,omitzero"`

	Harvest *Harvest `json:"harvests,omitempty"`
}
