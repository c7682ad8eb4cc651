package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/libaas-tailors/api/internal/model"
	"github.com/libaas-tailors/api/internal/orderview"
	"github.com/libaas-tailors/api/internal/projection"
	"github.com/libaas-tailors/api/internal/status"
	"github.com/libaas-tailors/api/internal/upstream"
)

// OrderViewHandler serves the assembled order-detail view and the
// stretch-data edit round trip. Each request gets its own controller:
// the view state is private to one page visit.
type OrderViewHandler struct {
	fetcher  orderview.OrderFetcher
	updater  orderview.StretchDataUpdater
	notifier orderview.Notifier
}

// NewOrderViewHandler creates a new OrderViewHandler. notifier may be nil.
func NewOrderViewHandler(fetcher orderview.OrderFetcher, updater orderview.StretchDataUpdater, notifier orderview.Notifier) *OrderViewHandler {
	return &OrderViewHandler{fetcher: fetcher, updater: updater, notifier: notifier}
}

// RegisterRoutes registers order view endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderViewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}", h.Get)
	r.Put("/{id}/stretch-data", h.UpdateStretchData)
}

// --- Response types ---

type statusResponse struct {
	Code  string `json:"code"`
	Color string `json:"color"`
	Label string `json:"label"`
}

type productLineResponse struct {
	ProductID     string  `json:"product_id"`
	Title         string  `json:"title,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	Quantity      int     `json:"quantity"`
	Price         string  `json:"price"`
	StitchedPrice *string `json:"stitched_price,omitempty"`
	IsStitching   bool    `json:"is_stitching,omitempty"`
}

// measurementsResponse carries the projected stretch-data sections. An
// empty section is an empty list; the admin UI decides whether to
// suppress the header.
type measurementsResponse struct {
	Kameez         []projection.Field              `json:"kameez"`
	Shalwar        []projection.Field              `json:"shalwar"`
	FitPreferences []projection.FitPreferenceBlock `json:"fitPreferences"`
	Additional     []projection.Field              `json:"additional"`
	StitchImage    string                          `json:"stitchImage,omitempty"`
}

type orderViewResponse struct {
	OrderID               string                `json:"order_id"`
	OrderDate             string                `json:"order_date,omitempty"`
	CustomerName          string                `json:"customer_name,omitempty"`
	Email                 string                `json:"email,omitempty"`
	Phone                 string                `json:"phone,omitempty"`
	Address               string                `json:"address,omitempty"`
	Apartment             string                `json:"apartment,omitempty"`
	PostCode              string                `json:"post_code,omitempty"`
	AdditionalInformation string                `json:"additional_information,omitempty"`
	Status                *statusResponse       `json:"status,omitempty"`
	PaymentMode           string                `json:"payment_mode,omitempty"`
	PaymentProofImage     string                `json:"payment_proof_image,omitempty"`
	Products              []productLineResponse `json:"products"`
	Measurements          *measurementsResponse `json:"measurements,omitempty"`
	TotalPrice            string                `json:"total_price"`
	CanEdit               bool                  `json:"can_edit"`
}

type updateStretchDataResponse struct {
	StretchData *model.StretchData `json:"stretchData"`
}

// --- Handlers ---

// Get handles GET /orders/{id}.
func (h *OrderViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id is required"})
		return
	}

	ctrl := orderview.NewController(h.fetcher)
	if err := ctrl.Load(r.Context(), orderID); err != nil {
		if upstream.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: load order %s: %v", orderID, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": ctrl.Err()})
		return
	}

	writeJSON(w, http.StatusOK, toOrderViewResponse(ctrl))
}

// UpdateStretchData handles PUT /orders/{id}/stretch-data. It loads the
// current order, opens an edit session over its record, and submits the
// request body as the edited record.
func (h *OrderViewHandler) UpdateStretchData(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id is required"})
		return
	}

	var edited model.StretchData
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	// The update is keyed by the order ID embedded in the record; fall
	// back to the path when the client omitted it.
	if edited.OrderID == "" {
		edited.OrderID = orderID
	}

	ctrl := orderview.NewController(h.fetcher)
	if err := ctrl.Load(r.Context(), orderID); err != nil {
		if upstream.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: load order %s for edit: %v", orderID, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": ctrl.Err()})
		return
	}

	session := orderview.NewEditSession(ctrl, h.updater, h.notifier)
	if err := session.Open(ctrl.StretchData()); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order has no stretch data to edit"})
		return
	}

	if err := session.Submit(r.Context(), &edited); err != nil {
		// Submit already logged and left the session open for retry.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, updateStretchDataResponse{StretchData: ctrl.StretchData()})
}

// --- Helpers ---

func toOrderViewResponse(ctrl *orderview.Controller) orderViewResponse {
	order := ctrl.Order()

	resp := orderViewResponse{
		OrderID:               order.OrderID,
		OrderDate:             order.OrderDate,
		Email:                 order.Email,
		Phone:                 order.Phone,
		Address:               order.Address,
		Apartment:             order.Apartment,
		PostCode:              order.PostCode,
		AdditionalInformation: order.AdditionalInformation,
		TotalPrice:            ctrl.TotalPrice().StringFixed(2),
		CanEdit:               ctrl.CanEdit(),
	}

	// The customer name is shown only when both parts are present.
	if order.FirstName != "" && order.LastName != "" {
		resp.CustomerName = order.FirstName + " " + order.LastName
	}

	if order.OrderStatus != "" {
		pres := status.Describe(order.OrderStatus)
		resp.Status = &statusResponse{
			Code:  order.OrderStatus,
			Color: pres.Color,
			Label: pres.Label,
		}
	}

	switch order.PaymentMode() {
	case model.PaymentModeCOD:
		resp.PaymentMode = string(model.PaymentModeCOD)
	case model.PaymentModeProof:
		resp.PaymentMode = string(model.PaymentModeProof)
		resp.PaymentProofImage = order.CashOnDeliveryImage
	}

	resp.Products = make([]productLineResponse, len(order.Products))
	for i, p := range order.Products {
		line := productLineResponse{
			ProductID:   p.ProductID,
			Title:       p.Title,
			ImageURL:    p.ImageURL,
			Quantity:    p.Quantity,
			Price:       p.Price.StringFixed(2),
			IsStitching: p.IsStitching,
		}
		if p.StitchedPrice != nil {
			s := p.StitchedPrice.StringFixed(2)
			line.StitchedPrice = &s
		}
		resp.Products[i] = line
	}

	if primary := ctrl.PrimaryStretchData(); primary != nil {
		resp.Measurements = &measurementsResponse{
			Kameez:         projection.KameezFields(primary),
			Shalwar:        projection.ShalwarFields(primary),
			FitPreferences: projection.FitPreferenceBlocks(order.Products),
			Additional:     projection.BodyMetricFields(primary),
			StitchImage:    order.Products[0].StitchImage,
		}
	}

	return resp
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
