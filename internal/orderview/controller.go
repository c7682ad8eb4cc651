// Package orderview holds the order-detail view state: a controller
// that loads one order and derives its presentation values, and an edit
// session that runs the stretch-data save round trip.
package orderview

import (
	"context"
	"sync"

	"github.com/libaas-tailors/api/internal/model"
	"github.com/libaas-tailors/api/internal/pricing"
	"github.com/shopspring/decimal"
)

// OrderFetcher fetches a single order from the upstream shop API.
// Satisfied by *upstream.Client; narrow interface for testability.
type OrderFetcher interface {
	GetOrderByID(ctx context.Context, orderID string) (*model.Order, error)
}

// State is the controller's load lifecycle. The tagged state replaces
// separate loading/error/data flags so that illegal combinations are
// unrepresentable.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Controller owns the view state for one order-detail page instance.
type Controller struct {
	fetcher OrderFetcher

	mu     sync.Mutex
	state  State
	order  *model.Order
	errMsg string
	gen    uint64
}

// NewController creates an idle controller.
func NewController(fetcher OrderFetcher) *Controller {
	return &Controller{fetcher: fetcher, state: StateIdle}
}

// Load fetches the order and transitions Loading -> Loaded or Errored.
// Re-entering Load from any state restarts at Loading. Each call bumps
// a request generation; a response arriving for a superseded generation
// is discarded so a stale fetch can never overwrite a newer one.
func (c *Controller) Load(ctx context.Context, orderID string) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()

	order, err := c.fetcher.GetOrderByID(ctx, orderID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Superseded by a newer Load; leave its state alone.
		return err
	}
	if err != nil {
		c.state = StateErrored
		c.errMsg = err.Error()
		c.order = nil
		return err
	}
	c.state = StateLoaded
	c.order = order
	c.errMsg = ""
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the stored error message, empty unless Errored.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Order returns the loaded order, or nil. The returned snapshot must be
// treated as read only; mutation goes through ReplaceStretchData.
func (c *Controller) Order() *model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// TotalPrice aggregates the loaded order's product prices. Zero when
// nothing is loaded.
func (c *Controller) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return decimal.Zero
	}
	return pricing.OrderTotal(c.order.Products)
}

// PrimaryStretchData returns the first product's first measurement
// record, or nil.
func (c *Controller) PrimaryStretchData() *model.StretchData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.PrimaryStretchData()
}

// StretchData returns the order's top-level measurement record, the one
// the edit session operates on.
func (c *Controller) StretchData() *model.StretchData {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return nil
	}
	return c.order.StretchData
}

// CanEdit reports whether editing is offered. It is gated on the
// top-level record only, independent of per-product records; the
// asymmetry is part of the observed contract.
func (c *Controller) CanEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order != nil && c.order.StretchData != nil
}

// ReplaceStretchData swaps the order's top-level measurement record
// wholesale. It is the edit session's commit target and a no-op unless
// an order is loaded; the replacement lives only in memory until the
// next fetch.
func (c *Controller) ReplaceStretchData(rec *model.StretchData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return
	}
	c.order.StretchData = rec
}
