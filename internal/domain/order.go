package domain

import (
	"math"
	"time"
)

// Order is the purchase record exposed by the institute storefront API.
// The service never invents orders; they arrive over the message bus and
// are only mutated through admin status updates.
type Order struct {
	OrderID         string           `json:"orderId"`
	UserEmail       string           `json:"userEmail"`
	User            Customer         `json:"user"`
	Items           []OrderItem      `json:"items"`
	Subtotal        float64          `json:"subtotal"`
	TotalDiscount   float64          `json:"totalDiscount"`
	DeliveryCharge  float64          `json:"deliveryCharge"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          OrderStatus      `json:"status"`
	DeliveryType    DeliveryType     `json:"deliveryType"`
	DeliveryStatus  DeliveryStatus   `json:"deliveryStatus,omitempty"`
	DeliveryInfo    *DeliveryInfo    `json:"deliveryInfo,omitempty"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod"`
	PaidInPerson    bool             `json:"paidInPerson"`
	AdminPayment    *AdminPayment    `json:"adminPaymentInfo,omitempty"`
	PaymentReceipts []PaymentReceipt `json:"paymentReceipts,omitempty"`
	AdminNote       string           `json:"adminNote,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type Customer struct {
	FullName string `json:"fullName"`
}

type OrderItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	PriceAtTime float64 `json:"priceAtTime"`
	ItemTotal   float64 `json:"itemTotal"`
}

// LineTotal is the computed row total, independent of the stored ItemTotal.
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.PriceAtTime
}

// DeliveryInfo is present only for delivery-type orders.
type DeliveryInfo struct {
	RecipientName string `json:"recipientName"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	District      string `json:"district"`
}

// AdminPayment records a payment collected in person by staff. When set
// (together with PaidInPerson) it replaces the uploaded receipt evidence.
type AdminPayment struct {
	RecipientName string `json:"recipientName"`
	ContactNumber string `json:"contactNumber"`
	AdminNote     string `json:"adminNote,omitempty"`
}

// PaymentReceipt is buyer-uploaded payment evidence. Only the metadata is
// kept here; the file itself lives on the media host.
type PaymentReceipt struct {
	URL        string    `json:"url"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
}

const totalsTolerance = 0.01

// Validate checks the structural requirements of an order: identifier,
// at least one item, sane quantities and non-negative money fields.
func (o Order) Validate() error {
	if o.OrderID == "" {
		return ErrValidation
	}
	if len(o.Items) == 0 {
		return ErrValidation
	}
	for _, it := range o.Items {
		if it.Quantity < 1 || it.PriceAtTime < 0 {
			return ErrValidation
		}
	}
	if o.Subtotal < 0 || o.TotalDiscount < 0 || o.DeliveryCharge < 0 || o.TotalAmount < 0 {
		return ErrValidation
	}
	return nil
}

// TotalsConsistent reports whether the stored grand total matches
// subtotal - discount + delivery charge within rounding tolerance.
// Inconsistent totals are surfaced, not repaired: the backend owns them.
func (o Order) TotalsConsistent() bool {
	want := o.Subtotal - o.TotalDiscount + o.DeliveryCharge
	return math.Abs(o.TotalAmount-want) <= totalsTolerance
}
