// Package upstream is the HTTP client for the shop API that owns the
// order data this service views.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/libaas-tailors/api/internal/model"
)

// maxErrorBody caps how much of an upstream error response is read.
const maxErrorBody = 8 << 10

// Error is a non-2xx response from the upstream API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}

// Client talks to the shop API. No retries: a failed call is terminal
// for that attempt and the caller decides whether to reissue it.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL. The timeout bounds
// every request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetOrderByID fetches a single order. The success shape is
// {"order": {...}}; error responses surface as *Error with the
// upstream's message string.
func (c *Client) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/get-order-by-orderId/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp)
	}

	var body struct {
		Order *model.Order `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if body.Order == nil {
		return nil, fmt.Errorf("order missing from upstream response")
	}
	return body.Order, nil
}

// UpdateBillingDetails submits an edited stretch-data record, keyed by
// the order ID, as a multipart form whose stretchData part carries the
// JSON-encoded record. The response body is ignored beyond its status:
// the upstream is not required to echo the saved record.
func (c *Client) UpdateBillingDetails(ctx context.Context, orderID string, record model.StretchData) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormField("stretchData")
	if err != nil {
		return fmt.Errorf("encode stretch data: %w", err)
	}
	if err := json.NewEncoder(part).Encode(record); err != nil {
		return fmt.Errorf("encode stretch data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encode stretch data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/billing-details/"+url.PathEscape(orderID), &buf)
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update billing details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}
	return nil
}

// readError extracts the upstream's message string from a non-2xx
// response, falling back to the HTTP status text.
func readError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			msg = body.Error
		} else if body.Message != "" {
			msg = body.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}
