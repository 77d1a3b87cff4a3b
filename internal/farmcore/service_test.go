package farmcore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FarmBot/entity"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	prefer string
	apikey string
	body   string
}

// newTestService points a client at a stub records API. handler decides
// the responses; every request is recorded for assertions.
func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			prefer: r.Header.Get("Prefer"),
			apikey: r.Header.Get("apikey"),
			body:   string(body),
		})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(server.URL, "test-key", 5*time.Second, log), &requests
}

func respondJSON(w http.ResponseWriter, v string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(v))
}

func TestGetFarmer(t *testing.T) {
	svc, requests := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[{"id":"f1","telegram_id":42,"name":"Ali","language":"ar"}]`)
	})

	farmer, err := svc.GetFarmer(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetFarmer: %v", err)
	}
	if farmer == nil || farmer.ID != "f1" || farmer.Language != "ar" {
		t.Errorf("farmer = %+v", farmer)
	}

	req := (*requests)[0]
	if req.path != "/rest/v1/farmers" {
		t.Errorf("path = %s", req.path)
	}
	if req.query != "select=%2A&telegram_id=eq.42" {
		t.Errorf("query = %s", req.query)
	}
	if req.apikey != "test-key" {
		t.Errorf("apikey header = %q", req.apikey)
	}
}

func TestGetFarmer_NoAccount(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[]`)
	})

	farmer, err := svc.GetFarmer(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetFarmer: %v", err)
	}
	if farmer != nil {
		t.Errorf("unregistered user returned a farmer: %+v", farmer)
	}
}

func TestCreateCrop_AsksForRepresentation(t *testing.T) {
	svc, requests := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[{"id":"c1","farmer_id":"f1","name":"Tomatoes","planting_date":"2026-03-01"}]`)
	})

	created, err := svc.CreateCrop(context.Background(), &entity.Crop{
		FarmerId:     "f1",
		Name:         "Tomatoes",
		PlantingDate: entity.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("CreateCrop: %v", err)
	}
	if created.ID != "c1" {
		t.Errorf("created crop id = %q", created.ID)
	}

	req := (*requests)[0]
	if req.method != http.MethodPost || req.prefer != "return=representation" {
		t.Errorf("method=%s prefer=%q, want POST with return=representation", req.method, req.prefer)
	}
}

func TestCropNameTaken_CaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[{"id":"c1","farmer_id":"f1","name":"Tomatoes","planting_date":"2026-03-01"}]`)
	})

	taken, err := svc.CropNameTaken(context.Background(), "f1", "TOMATOES", "")
	if err != nil {
		t.Fatal(err)
	}
	if !taken {
		t.Error("duplicate name in a different case slipped through")
	}

	taken, err = svc.CropNameTaken(context.Background(), "f1", "Olives", "")
	if err != nil {
		t.Fatal(err)
	}
	if taken {
		t.Error("fresh name reported as taken")
	}
}

func TestCropNameTaken_ExcludesOwnCrop(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[
			{"id":"c1","farmer_id":"f1","name":"tomatoes","planting_date":"2026-03-01"},
			{"id":"c2","farmer_id":"f1","name":"Olives","planting_date":"2026-03-05"}
		]`)
	})

	// renaming c1 to a different casing of its own name is not a clash
	taken, err := svc.CropNameTaken(context.Background(), "f1", "Tomatoes", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if taken {
		t.Error("rename to the crop's own name reported as taken")
	}

	// another crop's name still is
	taken, err = svc.CropNameTaken(context.Background(), "f1", "olives", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !taken {
		t.Error("clash with a sibling crop slipped through")
	}
}

func TestUpdateCrop_NilClearsColumn(t *testing.T) {
	svc, requests := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[{"id":"c1","farmer_id":"f1","name":"Tomatoes","planting_date":"2026-03-01"}]`)
	})

	if _, err := svc.UpdateCrop(context.Background(), "c1", map[string]any{"notes": nil}); err != nil {
		t.Fatalf("UpdateCrop: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte((*requests)[0].body), &body); err != nil {
		t.Fatal(err)
	}
	if v, ok := body["notes"]; !ok || v != nil {
		t.Errorf("patch body = %s, want explicit null notes", (*requests)[0].body)
	}
}

func TestDeleteCrop_NothingMatched(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[]`)
	})

	err := svc.DeleteCrop(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("DeleteCrop on missing row = %v, want ErrNotFound", err)
	}
}

func TestRequestError_CarriesStatus(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		respondJSON(w, `{"message":"bad key"}`)
	})

	_, err := svc.GetFarmer(context.Background(), 42)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusUnauthorized {
		t.Errorf("error = %v, want RequestError with status 401", err)
	}
}

func TestRecordDelivery_Cascade(t *testing.T) {
	svc, requests := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch && r.URL.Path == "/rest/v1/harvests":
			respondJSON(w, `[]`)
		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/deliveries":
			respondJSON(w, `[{"id":"d1","harvest_id":"h1","delivery_date":"2026-03-10"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/payments":
			respondJSON(w, `[{"id":"p1","delivery_id":"d1","expected_date":"2026-03-17","status":"pending"}]`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	collector := "Abu Khalil"
	date := entity.NewDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	delivery, err := svc.RecordDelivery(context.Background(), "h1", date, &collector, nil)
	if err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if delivery.ID != "d1" {
		t.Errorf("delivery id = %q", delivery.ID)
	}

	if len(*requests) != 3 {
		t.Fatalf("got %d requests, want mark + insert + payment", len(*requests))
	}

	mark := (*requests)[0]
	if mark.method != http.MethodPatch || mark.query != "id=eq.h1" {
		t.Errorf("first write = %s ?%s, want PATCH id=eq.h1", mark.method, mark.query)
	}
	var patch map[string]string
	json.Unmarshal([]byte(mark.body), &patch)
	if patch["status"] != entity.HarvestDelivered {
		t.Errorf("harvest patch = %v", patch)
	}

	var sent entity.Delivery
	json.Unmarshal([]byte((*requests)[1].body), &sent)
	if sent.HarvestId != "h1" || sent.CollectorName == nil || *sent.CollectorName != collector {
		t.Errorf("delivery insert = %s", (*requests)[1].body)
	}

	var payment entity.Payment
	json.Unmarshal([]byte((*requests)[2].body), &payment)
	if payment.DeliveryId != "d1" || payment.Status != entity.PaymentPending {
		t.Errorf("payment insert = %s", (*requests)[2].body)
	}
	if payment.ExpectedDate.String() != "2026-03-17" {
		t.Errorf("expected_date = %s, want one week after delivery", payment.ExpectedDate)
	}
}

func TestRecordDelivery_PaymentFailureReturnsDelivery(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch:
			respondJSON(w, `[]`)
		case r.URL.Path == "/rest/v1/deliveries":
			respondJSON(w, `[{"id":"d1","harvest_id":"h1","delivery_date":"2026-03-10"}]`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			respondJSON(w, `{"message":"down"}`)
		}
	})

	date := entity.NewDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	delivery, err := svc.RecordDelivery(context.Background(), "h1", date, nil, nil)
	if err == nil {
		t.Fatal("payment insert failed but RecordDelivery reported success")
	}
	if delivery == nil || delivery.ID != "d1" {
		t.Errorf("delivery = %+v, want the created row back for repair", delivery)
	}
}

func TestListUnlinkedDeliveredHarvests_FiltersLinked(t *testing.T) {
	svc, requests := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[
			{"id":"h1","crop_id":"c1","status":"delivered","harvest_date":"2026-03-01","quantity":10,"unit":"kg","deliveries":[{"id":"d1","harvest_id":"h1","delivery_date":"2026-03-01"}]},
			{"id":"h2","crop_id":"c1","status":"delivered","harvest_date":"2026-03-02","quantity":5,"unit":"kg"}
		]`)
	})

	rows, err := svc.ListUnlinkedDeliveredHarvests(context.Background(), "f1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != "h2" {
		t.Errorf("unlinked harvests = %+v, want only h2", rows)
	}

	req := (*requests)[0]
	if req.query == "" || req.path != "/rest/v1/harvests" {
		t.Errorf("request = %s ?%s", req.path, req.query)
	}
}

func TestListPendingPayments_ChecksOwnership(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, `[
			{"id":"p1","delivery_id":"d1","expected_date":"2026-03-17","status":"pending",
			 "deliveries":{"id":"d1","harvest_id":"h1","delivery_date":"2026-03-10",
			  "harvests":{"id":"h1","crop_id":"c1","harvest_date":"2026-03-09","quantity":10,"unit":"kg","status":"delivered",
			   "crops":{"id":"c1","farmer_id":"f1","name":"Tomatoes","planting_date":"2026-01-01"}}}},
			{"id":"p2","delivery_id":"d2","expected_date":"2026-03-17","status":"pending",
			 "deliveries":{"id":"d2","harvest_id":"h2","delivery_date":"2026-03-10",
			  "harvests":{"id":"h2","crop_id":"c2","harvest_date":"2026-03-09","quantity":5,"unit":"kg","status":"delivered",
			   "crops":{"id":"c2","farmer_id":"other","name":"Olives","planting_date":"2026-01-01"}}}}
		]`)
	})

	rows, err := svc.ListPendingPayments(context.Background(), "f1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != "p1" {
		t.Errorf("pending payments = %+v, want only the farmer's own", rows)
	}
	if rows[0].CropName() != "Tomatoes" {
		t.Errorf("CropName = %q", rows[0].CropName())
	}
}
