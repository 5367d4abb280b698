package domain

// OrderStatus is the admin-controlled fulfilment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRejected  OrderStatus = "rejected"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// DeliveryType is fixed at order creation.
type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// DeliveryStatus is meaningful only for delivery-type orders.
type DeliveryStatus string

const (
	DeliveryNotDelivered DeliveryStatus = "not_delivered"
	DeliveryDelivered    DeliveryStatus = "delivered"
)

type PaymentMethod string

const (
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Severity drives badge colouring in every surface that shows a status.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityNeutral Severity = "neutral"
)

// The label tables are the single source of truth for status display.
// Admin views, the student view and the receipt renderer all resolve
// through them; unknown codes fall back to the raw string so that a
// backend-added status never crashes an old client.

var statusLabels = map[OrderStatus]string{
	StatusPending:   "Pending review",
	StatusApproved:  "Approved",
	StatusRejected:  "Rejected",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

var statusSeverities = map[OrderStatus]Severity{
	StatusPending:   SeverityWarning,
	StatusApproved:  SeveritySuccess,
	StatusRejected:  SeverityError,
	StatusCompleted: SeverityInfo,
	StatusCancelled: SeverityNeutral,
}

var deliveryStatusLabels = map[DeliveryStatus]string{
	DeliveryNotDelivered: "Not delivered",
	DeliveryDelivered:    "Delivered",
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentBankTransfer:   "Bank transfer",
	PaymentCashOnDelivery: "Cash on delivery",
}

func (s OrderStatus) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label, or the raw code for unknown statuses.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Severity returns the badge severity; unknown statuses render neutral.
func (s OrderStatus) Severity() Severity {
	if sev, ok := statusSeverities[s]; ok {
		return sev
	}
	return SeverityNeutral
}

func (s DeliveryStatus) Known() bool {
	_, ok := deliveryStatusLabels[s]
	return ok
}

func (s DeliveryStatus) Label() string {
	if l, ok := deliveryStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

// legalTransitions is the enforced order lifecycle. The storefront UI used
// to rely on operators reading instructions; here an illegal edge is an
// error. completed is reachable only through approved, because only the
// pending→approved edge decrements stock downstream.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from→to is a legal status change.
// A no-op (from == to) is always allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TriggersStockDecrement reports whether applying from→to must emit the
// inventory-decrement event. True exactly for pending→approved.
func TriggersStockDecrement(from, to OrderStatus) bool {
	return from == StatusPending && to == StatusApproved
}
