package farmcore

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestWeeklySummary(t *testing.T) {
	svc, requests := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/harvests":
			respondJSON(w, `[
				{"id":"h1","crop_id":"c1","harvest_date":"2026-03-10","quantity":12,"unit":"kg","status":"stored"},
				{"id":"h2","crop_id":"c1","harvest_date":"2026-03-12","quantity":8,"unit":"kg","status":"delivered"}
			]`)
		case "/rest/v1/expenses":
			respondJSON(w, `[
				{"id":"e1","farmer_id":"f1","expense_date":"2026-03-11","category":"seeds","amount":50000},
				{"id":"e2","farmer_id":"f1","expense_date":"2026-03-12","category":"transport","amount":25000}
			]`)
		case "/rest/v1/payments":
			respondJSON(w, `[
				{"id":"p1","delivery_id":"d1","expected_date":"2026-03-17","expected_amount":300000,"status":"pending",
				 "deliveries":{"id":"d1","harvest_id":"h2","delivery_date":"2026-03-12",
				  "harvests":{"id":"h2","crop_id":"c1","harvest_date":"2026-03-12","quantity":8,"unit":"kg","status":"delivered",
				   "crops":{"id":"c1","farmer_id":"f1","name":"Tomatoes","planting_date":"2026-01-01"}}}}
			]`)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	summary, err := svc.WeeklySummary(context.Background(), "f1")
	if err != nil {
		t.Fatalf("WeeklySummary: %v", err)
	}

	if summary.TotalHarvestKg != 20 {
		t.Errorf("TotalHarvestKg = %v, want 20", summary.TotalHarvestKg)
	}
	if summary.TotalExpenses != 75000 {
		t.Errorf("TotalExpenses = %v, want 75000", summary.TotalExpenses)
	}
	if summary.TotalPending != 300000 {
		t.Errorf("TotalPending = %v, want 300000", summary.TotalPending)
	}
	if len(summary.Harvests) != 2 || len(summary.Expenses) != 2 || len(summary.PendingPayments) != 1 {
		t.Errorf("rows = %d harvests, %d expenses, %d pending",
			len(summary.Harvests), len(summary.Expenses), len(summary.PendingPayments))
	}

	// Harvest and expense queries are bounded to the trailing week.
	for _, req := range *requests {
		if req.path == "/rest/v1/harvests" && !strings.Contains(req.query, "harvest_date=gte.") {
			t.Errorf("harvest query has no week bound: %s", req.query)
		}
		if req.path == "/rest/v1/expenses" && !strings.Contains(req.query, "expense_date=gte.") {
			t.Errorf("expense query has no week bound: %s", req.query)
		}
	}
}
