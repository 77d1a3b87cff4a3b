package entity

import "time"

type Treatment struct {
	ID            string    `json:"id,omitempty"`
	CropId        string    `json:"crop_id"`
	TreatmentDate Date      `json:"treatment_date"`
	ProductName   string    `json:"product_name"`
	Cost          *float64  `json:"cost"`
	NextDueDate   *Date     `json:"next_due_date"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`

	Crop *Crop `json:"crops,omitempty"`
}

func (t *Treatment) CropName() string {
	if t.Crop == nil {
		return ""
	}
	return t.Crop.Name
}
