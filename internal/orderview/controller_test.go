package orderview

import (
	"context"
	"errors"
	"testing"

	"github.com/libaas-tailors/api/internal/model"
	"github.com/shopspring/decimal"
)

// --- Mocks ---

type mockFetcher struct {
	getOrderFn func(ctx context.Context, orderID string) (*model.Order, error)
}

func (m *mockFetcher) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	return m.getOrderFn(ctx, orderID)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testOrder() *model.Order {
	return &model.Order{
		OrderID: "ord-1",
		Products: []model.Product{
			{ProductID: "p1", Price: dec("1000"), Quantity: 2},
			{ProductID: "p2", Price: dec("500"), StitchedPrice: decPtr("200"), Quantity: 1},
		},
	}
}

// --- Tests ---

func TestLoadSuccess(t *testing.T) {
	fetcher := &mockFetcher{
		getOrderFn: func(_ context.Context, orderID string) (*model.Order, error) {
			if orderID != "ord-1" {
				t.Errorf("fetcher got order id %q, want ord-1", orderID)
			}
			return testOrder(), nil
		},
	}

	ctrl := NewController(fetcher)
	if ctrl.State() != StateIdle {
		t.Fatalf("new controller state = %s, want idle", ctrl.State())
	}

	if err := ctrl.Load(context.Background(), "ord-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ctrl.State() != StateLoaded {
		t.Fatalf("state = %s, want loaded", ctrl.State())
	}
	if ctrl.Order() == nil || ctrl.Order().OrderID != "ord-1" {
		t.Fatalf("order not stored: %+v", ctrl.Order())
	}
	if ctrl.Err() != "" {
		t.Fatalf("error message should be clear, got %q", ctrl.Err())
	}
}

func TestLoadFailureThenRecovery(t *testing.T) {
	fail := true
	fetcher := &mockFetcher{
		getOrderFn: func(context.Context, string) (*model.Order, error) {
			if fail {
				return nil, errors.New("connection refused")
			}
			return testOrder(), nil
		},
	}

	ctrl := NewController(fetcher)
	if err := ctrl.Load(context.Background(), "ord-1"); err == nil {
		t.Fatal("expected load error")
	}
	if ctrl.State() != StateErrored {
		t.Fatalf("state = %s, want errored", ctrl.State())
	}
	if ctrl.Err() != "connection refused" {
		t.Fatalf("error message = %q", ctrl.Err())
	}
	if ctrl.Order() != nil {
		t.Fatal("order should be unset after a fetch failure")
	}

	// A subsequent successful load clears the error and populates the order.
	fail = false
	if err := ctrl.Load(context.Background(), "ord-1"); err != nil {
		t.Fatalf("Load after recovery: %v", err)
	}
	if ctrl.State() != StateLoaded || ctrl.Err() != "" || ctrl.Order() == nil {
		t.Fatalf("recovery did not clear error state: state=%s err=%q", ctrl.State(), ctrl.Err())
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetcher := &mockFetcher{
		getOrderFn: func(_ context.Context, orderID string) (*model.Order, error) {
			if orderID == "ord-old" {
				close(started)
				<-release
				return &model.Order{OrderID: "ord-old"}, nil
			}
			return &model.Order{OrderID: "ord-new"}, nil
		},
	}

	ctrl := NewController(fetcher)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.Load(context.Background(), "ord-old")
	}()
	<-started

	// The newer load supersedes the in-flight one.
	if err := ctrl.Load(context.Background(), "ord-new"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	close(release)
	<-done

	if got := ctrl.Order().OrderID; got != "ord-new" {
		t.Fatalf("stale response overwrote newer state: got order %q", got)
	}
	if ctrl.State() != StateLoaded {
		t.Fatalf("state = %s, want loaded", ctrl.State())
	}
}

func TestTotalPrice(t *testing.T) {
	fetcher := &mockFetcher{
		getOrderFn: func(context.Context, string) (*model.Order, error) {
			return testOrder(), nil
		},
	}

	ctrl := NewController(fetcher)
	if !ctrl.TotalPrice().IsZero() {
		t.Fatal("total should be 0 before anything is loaded")
	}

	if err := ctrl.Load(context.Background(), "ord-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// 1000*2 + (500+200)*1
	if got := ctrl.TotalPrice(); !got.Equal(dec("2700")) {
		t.Fatalf("total = %s, want 2700", got)
	}
}

func TestCanEditGatedOnTopLevelRecordOnly(t *testing.T) {
	// Top-level record, no per-product records: editable, no primary.
	withTopLevel := testOrder()
	withTopLevel.StretchData = &model.StretchData{OrderID: "ord-1"}

	// Per-product record only: a primary exists but editing is not offered.
	withProductRecord := testOrder()
	withProductRecord.Products[0].StretchData = []model.StretchData{
		{Kameez: &model.Kameez{}},
	}

	tests := []struct {
		name        string
		order       *model.Order
		wantCanEdit bool
		wantPrimary bool
	}{
		{"top-level only", withTopLevel, true, false},
		{"per-product only", withProductRecord, false, true},
		{"neither", testOrder(), false, false},
	}

	for _, tt := range tests {
		fetcher := &mockFetcher{
			getOrderFn: func(context.Context, string) (*model.Order, error) {
				return tt.order, nil
			},
		}
		ctrl := NewController(fetcher)
		if err := ctrl.Load(context.Background(), "ord-1"); err != nil {
			t.Fatalf("%s: Load: %v", tt.name, err)
		}
		if got := ctrl.CanEdit(); got != tt.wantCanEdit {
			t.Errorf("%s: CanEdit = %v, want %v", tt.name, got, tt.wantCanEdit)
		}
		if got := ctrl.PrimaryStretchData() != nil; got != tt.wantPrimary {
			t.Errorf("%s: primary record presence = %v, want %v", tt.name, got, tt.wantPrimary)
		}
	}
}
