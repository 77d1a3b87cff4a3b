package entity

import "time"

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

type Payment struct {
	ID             string    `json:"id,omitempty"`
	DeliveryId     string    `json:"delivery_id"`
	ExpectedDate   Date      `json:"expected_date"`
	ExpectedAmount float64   `json:"expected_amount,omitempty"`
	PaidAmount     *float64  `json:"paid_amount,omitempty"`
	PaidDate       *Date     `json:"paid_date,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at,omitzero"`

	Delivery *Delivery `json:"deliveries,omitempty"`
}

// CropName walks the payments -> deliveries -> harvests -> crops join.
func (p *Payment) CropName() string {
	if p.Delivery == nil || p.Delivery.Harvest == nil || p.Delivery.Harvest.Crop == nil {
		return ""
	}
	return p.Delivery.Harvest.Crop.Name
}

func (p *Payment) FarmerId() string {
	if p.Delivery == nil || p.Delivery.Harvest == nil || p.Delivery.Harvest.Crop == nil {
		return ""
	}
	return p.Delivery.Harvest.Crop.FarmerId
}
