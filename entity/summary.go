package entity

// WeeklySummary aggregates the trailing seven days of a farmer's records.
type WeeklySummary struct {
	TotalHarvestKg  float64   `json:"total_harvest"`
	TotalExpenses   float64   `json:"total_expenses"`
	TotalPending    float64   `json:"total_pending"`
	Harvests        []Harvest `json:"harvests"`
	Expenses        []Expense `json:"expenses"`
	PendingPayments []Payment `json:"pending_payments"`
}
