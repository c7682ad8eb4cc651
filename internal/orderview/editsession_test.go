package orderview

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/libaas-tailors/api/internal/model"
)

// --- Mocks ---

type mockUpdater struct {
	updateFn func(ctx context.Context, orderID string, record model.StretchData) error
}

func (m *mockUpdater) UpdateBillingDetails(ctx context.Context, orderID string, record model.StretchData) error {
	return m.updateFn(ctx, orderID, record)
}

type mockNotifier struct {
	orderID string
	message string
	calls   int
}

func (m *mockNotifier) StretchDataUpdated(orderID, message string) {
	m.orderID = orderID
	m.message = message
	m.calls++
}

func floatPtr(v float64) *float64 {
	return &v
}

func testRecord() *model.StretchData {
	return &model.StretchData{
		OrderID: "ord-1",
		Kameez: &model.Kameez{
			BustCircumference:  floatPtr(36),
			WaistCircumference: floatPtr(32),
		},
		FitPreferences: &model.FitPreferences{KameezFit: "Slim"},
		Height:         floatPtr(165),
	}
}

// loadedController returns a controller with an order loaded whose
// top-level stretch data is record.
func loadedController(t *testing.T, record *model.StretchData) *Controller {
	t.Helper()
	order := testOrder()
	order.StretchData = record
	ctrl := NewController(&mockFetcher{
		getOrderFn: func(context.Context, string) (*model.Order, error) {
			return order, nil
		},
	})
	if err := ctrl.Load(context.Background(), "ord-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ctrl
}

// --- Tests ---

func TestSubmitUnchangedRoundTrip(t *testing.T) {
	original := testRecord()
	ctrl := loadedController(t, original.Clone())
	updater := &mockUpdater{
		updateFn: func(_ context.Context, orderID string, record model.StretchData) error {
			if orderID != "ord-1" {
				t.Errorf("update keyed by %q, want ord-1", orderID)
			}
			return nil
		},
	}
	notifier := &mockNotifier{}

	session := NewEditSession(ctrl, updater, notifier)
	if err := session.Open(ctrl.StretchData()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := session.Submit(context.Background(), session.Draft()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if session.State() != SessionClosed {
		t.Fatalf("session state = %s, want closed", session.State())
	}
	if !reflect.DeepEqual(ctrl.StretchData(), original) {
		t.Fatalf("stored record diverged from the original:\ngot  %+v\nwant %+v", ctrl.StretchData(), original)
	}
	if notifier.calls != 1 || notifier.orderID != "ord-1" || notifier.message != "Data updated successfully." {
		t.Fatalf("unexpected notification: %+v", notifier)
	}
}

func TestSubmitCommitsSubmittedPayload(t *testing.T) {
	ctrl := loadedController(t, testRecord())
	updater := &mockUpdater{
		updateFn: func(context.Context, string, model.StretchData) error { return nil },
	}

	session := NewEditSession(ctrl, updater, nil)
	if err := session.Open(ctrl.StretchData()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	edited := session.Draft()
	edited.Kameez.BustCircumference = floatPtr(38)
	if err := session.Submit(context.Background(), edited); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got := ctrl.StretchData()
	if got.Kameez.BustCircumference == nil || *got.Kameez.BustCircumference != 38 {
		t.Fatalf("edited record was not committed: %+v", got.Kameez)
	}
}

func TestDraftCannotAliasControllerState(t *testing.T) {
	ctrl := loadedController(t, testRecord())
	session := NewEditSession(ctrl, &mockUpdater{
		updateFn: func(context.Context, string, model.StretchData) error { return nil },
	}, nil)

	if err := session.Open(ctrl.StretchData()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	draft := session.Draft()
	*draft.Kameez.BustCircumference = 99
	draft.FitPreferences.KameezFit = "Loose"

	live := ctrl.StretchData()
	if *live.Kameez.BustCircumference != 36 {
		t.Fatal("mutating the draft reached the controller's measurements")
	}
	if live.FitPreferences.KameezFit != "Slim" {
		t.Fatal("mutating the draft reached the controller's preferences")
	}
}

func TestSubmitFailureKeepsSessionOpen(t *testing.T) {
	ctrl := loadedController(t, testRecord())
	wantErr := errors.New("upstream: Internal Server Error (status 500)")
	updater := &mockUpdater{
		updateFn: func(context.Context, string, model.StretchData) error { return wantErr },
	}
	notifier := &mockNotifier{}

	session := NewEditSession(ctrl, updater, notifier)
	if err := session.Open(ctrl.StretchData()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	edited := session.Draft()
	edited.Height = floatPtr(170)
	err := session.Submit(context.Background(), edited)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Submit error = %v, want %v", err, wantErr)
	}

	if session.State() != SessionOpen {
		t.Fatalf("session state = %s, want open for retry", session.State())
	}
	if !errors.Is(session.LastError(), wantErr) {
		t.Fatalf("LastError = %v, want %v", session.LastError(), wantErr)
	}
	if *ctrl.StretchData().Height != 165 {
		t.Fatal("failed submit must not touch the controller's record")
	}
	if notifier.calls != 0 {
		t.Fatal("failed submit must not emit a success notification")
	}

	// Retry succeeds and closes the session.
	updater.updateFn = func(context.Context, string, model.StretchData) error { return nil }
	if err := session.Submit(context.Background(), edited); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if session.State() != SessionClosed || session.LastError() != nil {
		t.Fatalf("retry did not close cleanly: state=%s lastErr=%v", session.State(), session.LastError())
	}
	if *ctrl.StretchData().Height != 170 {
		t.Fatal("retried submit did not commit")
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	ctrl := loadedController(t, testRecord())
	updater := &mockUpdater{
		updateFn: func(context.Context, string, model.StretchData) error {
			t.Fatal("cancel must not submit")
			return nil
		},
	}

	session := NewEditSession(ctrl, updater, nil)
	if err := session.Open(ctrl.StretchData()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	session.Cancel()
	if session.State() != SessionClosed {
		t.Fatalf("session state = %s, want closed", session.State())
	}
	if session.Draft() != nil {
		t.Fatal("draft should be discarded on cancel")
	}
	if err := session.Submit(context.Background(), testRecord()); !errors.Is(err, ErrSessionNotOpen) {
		t.Fatalf("Submit after cancel = %v, want ErrSessionNotOpen", err)
	}
}

func TestOpenWithoutRecord(t *testing.T) {
	ctrl := loadedController(t, nil)
	session := NewEditSession(ctrl, &mockUpdater{
		updateFn: func(context.Context, string, model.StretchData) error { return nil },
	}, nil)

	if err := session.Open(ctrl.StretchData()); !errors.Is(err, ErrNoStretchData) {
		t.Fatalf("Open = %v, want ErrNoStretchData", err)
	}
	if session.State() != SessionClosed {
		t.Fatalf("session state = %s, want closed", session.State())
	}
}
