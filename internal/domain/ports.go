package domain

import (
	"context"
	"time"
)

// OrderRepository is the persistence port for orders.
type OrderRepository interface {
	// Upsert stores the full order payload together with its status column.
	Upsert(ctx context.Context, id string, raw []byte, status OrderStatus) error
	// UpdateStatus persists a status transition only while the stored
	// status still equals from; a lost race reports ErrConflict. This is
	// what keeps the stock-decrement event single-shot when two admins
	// approve the same order at once.
	UpdateStatus(ctx context.Context, id string, raw []byte, from, to OrderStatus) error
	LoadAll(ctx context.Context, fn func(id string, raw []byte) error) error
}

// OrderCache is the fast-read port backing the HTTP API.
type OrderCache interface {
	Get(id string) (Order, bool)
	Set(id string, o Order)
	// All returns a point-in-time snapshot, unordered.
	All() []Order
}

// MessageSubscriber is the port for the incoming order stream.
type MessageSubscriber interface {
	// Subscribe registers the handler; ack/redelivery is the adapter's job.
	Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error
}

// StatusChange is the event emitted for every applied status transition.
// DecrementStock is set only on the pending→approved edge; the inventory
// service downstream acts on that flag alone.
type StatusChange struct {
	OrderID        string      `json:"orderId"`
	From           OrderStatus `json:"from"`
	To             OrderStatus `json:"to"`
	DecrementStock bool        `json:"decrementStock"`
	OccurredAt     time.Time   `json:"occurredAt"`
}

// EventPublisher is the outgoing port for status change events.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, change StatusChange) error
}

// ReceiptRenderer turns an order into a self-contained printable document.
type ReceiptRenderer interface {
	Render(o Order) (string, error)
}

// DocumentSink delivers a rendered document to wherever it should end up
// (archive directory, HTTP response, printer spool). Keeps the renderer
// free of any platform concern.
type DocumentSink interface {
	Deliver(ctx context.Context, orderID, document string) error
}

// Shared domain errors
var (
	ErrNotFound          = notFoundError("not found")
	ErrValidation        = validationError("invalid data")
	ErrIllegalTransition = transitionError("illegal status transition")
	ErrConflict          = conflictError("order was modified concurrently")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

type transitionError string

func (e transitionError) Error() string { return string(e) }

type conflictError string

func (e conflictError) Error() string { return string(e) }
