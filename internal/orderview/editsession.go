package orderview

import (
	"context"
	"errors"
	"log"

	"github.com/libaas-tailors/api/internal/model"
)

// StretchDataUpdater submits an edited measurement record upstream.
// Satisfied by *upstream.Client; narrow interface for testability.
type StretchDataUpdater interface {
	UpdateBillingDetails(ctx context.Context, orderID string, record model.StretchData) error
}

// Notifier emits the user-facing notification after a successful save.
// Satisfied by *notify.Hub.
type Notifier interface {
	StretchDataUpdated(orderID, message string)
}

// Errors returned by the edit session.
var (
	ErrSessionNotOpen = errors.New("edit session is not open")
	ErrNoStretchData  = errors.New("order has no stretch data to edit")
)

// SessionState is the edit session lifecycle.
type SessionState int

const (
	SessionClosed SessionState = iota
	SessionOpen
	SessionSubmitting
)

func (s SessionState) String() string {
	switch s {
	case SessionClosed:
		return "closed"
	case SessionOpen:
		return "open"
	case SessionSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// EditSession runs the measurement edit round trip: Closed -> Open ->
// Submitting -> Closed on success; Cancel returns to Closed without a
// submission; a failed submit returns to Open so the user can retry.
type EditSession struct {
	controller *Controller
	updater    StretchDataUpdater
	notifier   Notifier

	state   SessionState
	draft   *model.StretchData
	lastErr error
}

// NewEditSession creates a closed session bound to the controller whose
// record it edits. notifier may be nil.
func NewEditSession(controller *Controller, updater StretchDataUpdater, notifier Notifier) *EditSession {
	return &EditSession{
		controller: controller,
		updater:    updater,
		notifier:   notifier,
		state:      SessionClosed,
	}
}

// Open seeds the editor with a deep copy of the current record, so the
// editor can never reach the controller's live state through the draft.
func (s *EditSession) Open(current *model.StretchData) error {
	if current == nil {
		return ErrNoStretchData
	}
	s.state = SessionOpen
	s.draft = current.Clone()
	s.lastErr = nil
	return nil
}

// Draft returns a copy of the editor's seed.
func (s *EditSession) Draft() *model.StretchData {
	return s.draft.Clone()
}

// Submit sends the edited record upstream, keyed by the order ID
// embedded in it. On success the session closes and the controller's
// record is replaced with the record as submitted: the upstream is not
// trusted to echo the saved record, so the submitted payload is the
// committed state. On failure the error is logged, recorded on the
// session, and returned; the session stays Open for retry or cancel.
func (s *EditSession) Submit(ctx context.Context, edited *model.StretchData) error {
	if s.state != SessionOpen {
		return ErrSessionNotOpen
	}
	s.state = SessionSubmitting

	err := s.updater.UpdateBillingDetails(ctx, edited.OrderID, *edited)
	if err != nil {
		log.Printf("ERROR: update stretch data for order %s: %v", edited.OrderID, err)
		s.state = SessionOpen
		s.lastErr = err
		return err
	}

	s.controller.ReplaceStretchData(edited.Clone())
	s.state = SessionClosed
	s.draft = nil
	s.lastErr = nil
	if s.notifier != nil {
		s.notifier.StretchDataUpdated(edited.OrderID, "Data updated successfully.")
	}
	return nil
}

// Cancel discards the draft and closes the session without submitting.
func (s *EditSession) Cancel() {
	s.state = SessionClosed
	s.draft = nil
}

// State returns the session lifecycle state.
func (s *EditSession) State() SessionState {
	return s.state
}

// LastError returns the most recent submit failure, nil after a
// successful submit or a fresh Open.
func (s *EditSession) LastError() error {
	return s.lastErr
}
