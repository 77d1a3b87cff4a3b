package price

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FarmBot/entity"
)

type fakeCore struct {
	created  []*entity.MarketPrice
	rows     []entity.MarketPrice
	lastCrop string
	lastLim  int
}

func (c *fakeCore) CreateMarketPrice(_ context.Context, p *entity.MarketPrice) (*entity.MarketPrice, error) {
	out := *p
	out.ID = "mp1"
	c.created = append(c.created, &out)
	return &out, nil
}

func (c *fakeCore) ListMarketPrices(_ context.Context, cropName string, limit int) ([]entity.MarketPrice, error) {
	c.lastCrop = cropName
	c.lastLim = limit
	return c.rows, nil
}

type fakeEvents struct {
	prices []entity.MarketPrice
}

func (e *fakeEvents) PriceAdded(p entity.MarketPrice) { e.prices = append(e.prices, p) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddPrice(t *testing.T) {
	core := &fakeCore{}
	events := &fakeEvents{}
	handler := AddPrice(testLogger(), core, events)

	body := `{"crop_name":"Tomatoes","price_date":"2026-03-10","price_per_kg":45000,"source":"admin"}`
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if len(core.created) != 1 {
		t.Fatalf("created %d prices, want 1", len(core.created))
	}
	p := core.created[0]
	if p.CropName != "Tomatoes" || p.PricePerKg != 45000 || p.PriceDate.String() != "2026-03-10" {
		t.Errorf("created price = %+v", p)
	}
	if len(events.prices) != 1 {
		t.Errorf("published %d price events, want 1", len(events.prices))
	}

	var resp struct {
		Status string             `json:"status"`
		Data   entity.MarketPrice `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "OK" || resp.Data.ID != "mp1" {
		t.Errorf("response = %s", rec.Body)
	}
}

func TestAddPrice_DateDefaultsToToday(t *testing.T) {
	core := &fakeCore{}
	handler := AddPrice(testLogger(), core, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/prices",
		strings.NewReader(`{"crop_name":"Olives","price_per_kg":120000}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if core.created[0].PriceDate.String() != entity.Today().String() {
		t.Errorf("price date = %s, want today", core.created[0].PriceDate)
	}
}

func TestAddPrice_Rejections(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{`,
		"missing crop":   `{"price_per_kg":10}`,
		"zero price":     `{"crop_name":"x","price_per_kg":0}`,
		"negative price": `{"crop_name":"x","price_per_kg":-5}`,
		"bad date":       `{"crop_name":"x","price_per_kg":10,"price_date":"soon"}`,
	}
	for name, body := range cases {
		core := &fakeCore{}
		rec := httptest.NewRecorder()
		AddPrice(testLogger(), core, nil)(rec, httptest.NewRequest(http.MethodPost, "/api/v1/prices", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
		if len(core.created) != 0 {
			t.Errorf("%s: invalid request still wrote a price", name)
		}
	}
}

func TestListPrices_QueryParams(t *testing.T) {
	core := &fakeCore{rows: []entity.MarketPrice{{ID: "mp1", CropName: "Tomatoes", PricePerKg: 45000}}}
	handler := ListPrices(testLogger(), core)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices?crop=Tomatoes&limit=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if core.lastCrop != "Tomatoes" || core.lastLim != 3 {
		t.Errorf("handler passed crop=%q limit=%d", core.lastCrop, core.lastLim)
	}
}

func TestListPrices_InvalidLimit(t *testing.T) {
	handler := ListPrices(testLogger(), &fakeCore{})

	for _, q := range []string{"limit=0", "limit=-1", "limit=many"} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}
