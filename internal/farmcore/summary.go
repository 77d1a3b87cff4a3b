package farmcore

import (
	"context"
	"net/url"

	"FarmBot/entity"
)

// WeeklySummary aggregates the trailing seven days of harvests,
// expenses and still-pending payments for one farmer.
func (s *Service) WeeklySummary(ctx context.Context, farmerId string) (*entity.WeeklySummary, error) {
	start := entity.Today().AddDays(-7)

	harvestParams := url.Values{}
	harvestParams.Set("select", "*,crops!inner(*)")
	harvestParams.Set("crops.farmer_id", eq(farmerId))
	harvestParams.Set("harvest_date", "gte."+start.String())

	var harvests []entity.Harvest
	if err := s.get(ctx, "harvests", harvestParams, &harvests); err != nil {
		return nil, err
	}

	expenseParams := url.Values{}
	expenseParams.Set("select", "*")
	expenseParams.Set("farmer_id", eq(farmerId))
	expenseParams.Set("expense_date", "gte."+start.String())

	var expenses []entity.Expense
	if err := s.get(ctx, "expenses", expenseParams, &expenses); err != nil {
		return nil, err
	}

	pending, err := s.ListPendingPayments(ctx, farmerId)
	if err != nil {
		return nil, err
	}

	summary := &entity.WeeklySummary{
		Harvests:        harvests,
		Expenses:        expenses,
		PendingPayments: pending,
	}
	for _, h := range harvests {
		summary.TotalHarvestKg += h.Quantity
	}
	for _, e := range expenses {
		summary.TotalExpenses += e.Amount
	}
	for _, p := range pending {
		summary.TotalPending += p.ExpectedAmount
	}
	return summary, nil
}
