package entity

import "time"

const (
	ExpenseSeeds      = "Seeds"
	ExpenseFertilizer = "Fertilizer"
	ExpenseTransport  = "Transport"
	ExpenseOther      = "Other"
)

type Expense struct {
	ID          string    `json:"id,omitempty"`
	FarmerId    string    `json:"farmer_id"`
	CropId      *string   `json:"crop_id"`
	ExpenseDate Date      `json:"expense_date"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}
