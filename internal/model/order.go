// Package model holds the wire types exchanged with the upstream shop
// API. The upstream responses are loosely shaped, so every nested
// structure is an explicit optional at each level: a nil pointer means
// the field was simply not provided.
package model

import "github.com/shopspring/decimal"

// PaymentMode identifies how a customer paid for an order.
type PaymentMode string

const (
	// PaymentModeNone is reported when the order carries no payment flag.
	PaymentModeNone PaymentMode = ""
	// PaymentModeCOD marks a cash-on-delivery order.
	PaymentModeCOD PaymentMode = "cash_on_delivery"
	// PaymentModeProof marks an order paid upfront with a proof-of-payment image.
	PaymentModeProof PaymentMode = "payment_proof"
)

// Order is a single custom-apparel order as returned by the upstream API.
type Order struct {
	OrderID               string       `json:"orderId"`
	OrderDate             string       `json:"orderDate,omitempty"`
	FirstName             string       `json:"firstName,omitempty"`
	LastName              string       `json:"lastName,omitempty"`
	Email                 string       `json:"email,omitempty"`
	Phone                 string       `json:"phone,omitempty"`
	Address               string       `json:"address,omitempty"`
	Apartment             string       `json:"apartment,omitempty"`
	PostCode              string       `json:"postCode,omitempty"`
	AdditionalInformation string       `json:"additionalInformation,omitempty"`
	OrderStatus           string       `json:"orderStatus,omitempty"`
	CashOnDelivery        *bool        `json:"cashOnDelivery,omitempty"`
	CashOnDeliveryImage   string       `json:"cashOnDeliveryImage,omitempty"`
	Products              []Product    `json:"products"`
	StretchData           *StretchData `json:"stretchData,omitempty"`
}

// PaymentMode resolves the tri-state cashOnDelivery flag. The two modes
// are mutually exclusive; an absent flag means no payment evidence is
// shown at all.
func (o *Order) PaymentMode() PaymentMode {
	if o == nil || o.CashOnDelivery == nil {
		return PaymentModeNone
	}
	if *o.CashOnDelivery {
		return PaymentModeCOD
	}
	return PaymentModeProof
}

// PrimaryStretchData returns the first measurement record of the first
// product, which the detail view treats as "the" record for the order.
func (o *Order) PrimaryStretchData() *StretchData {
	if o == nil || len(o.Products) == 0 || len(o.Products[0].StretchData) == 0 {
		return nil
	}
	return &o.Products[0].StretchData[0]
}

// Product is one ordered item, optionally with stitching and its own
// measurement records.
type Product struct {
	ProductID     string           `json:"productId"`
	Title         string           `json:"title,omitempty"`
	ImageURL      string           `json:"Imageurl,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	StitchedPrice *decimal.Decimal `json:"stitchedPrice,omitempty"`
	Quantity      int              `json:"quantity"`
	IsStitching   bool             `json:"isStitching,omitempty"`
	StitchImage   string           `json:"stitchImage,omitempty"`
	StretchData   []StretchData    `json:"stretchData,omitempty"`
}
