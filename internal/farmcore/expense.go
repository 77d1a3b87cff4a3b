package farmcore

import (
	"context"
	"fmt"

	"FarmBot/entity"
)

func (s *Service) CreateExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	var rows []entity.Expense
	if err := s.post(ctx, "expenses", expense, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create expense: %w", ErrNotFound)
	}
	return &rows[0], nil
}
