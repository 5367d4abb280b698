package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/example/akura-order-service/internal/domain"
)

// GetOrderByID — fetch one order from the cache.
type GetOrderByID struct {
	Cache domain.OrderCache
}

func (uc GetOrderByID) Execute(id string) (domain.Order, bool) {
	return uc.Cache.Get(id)
}

// ListFilter narrows and pages the order listing.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// ListOrders — newest-first listing over the cache snapshot.
type ListOrders struct {
	Cache domain.OrderCache
}

func (uc ListOrders) Execute(f ListFilter) []domain.Order {
	all := uc.Cache.All()
	orders := all[:0:0]
	for _, o := range all {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].OrderID < orders[j].OrderID
	})
	if f.Offset > 0 {
		if f.Offset >= len(orders) {
			return nil
		}
		orders = orders[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(orders) {
		orders = orders[:f.Limit]
	}
	return orders
}

// LoadCache — warm the cache from the repository at startup.
type LoadCache struct {
	Repo  domain.OrderRepository
	Cache domain.OrderCache
}

func (uc LoadCache) Execute(ctx context.Context) error {
	return uc.Repo.LoadAll(ctx, func(id string, raw []byte) error {
		var o domain.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			// skip corrupted rows without aborting the full load
			return nil
		}
		uc.Cache.Set(id, o)
		return nil
	})
}

// ProcessIncomingOrder — persist an incoming order message and refresh the
// cache. New orders without a status start as pending; unknown statuses are
// stored as-is so a newer backend never wedges the stream.
type ProcessIncomingOrder struct {
	Repo  domain.OrderRepository
	Cache domain.OrderCache
}

func (uc ProcessIncomingOrder) Execute(ctx context.Context, raw []byte) error {
	var o domain.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return err
	}
	if o.OrderID == "" {
		return domain.ErrValidation
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	normalized, err := json.Marshal(o)
	if err != nil {
		return err
	}
	if err := uc.Repo.Upsert(ctx, o.OrderID, normalized, o.Status); err != nil {
		return err
	}
	uc.Cache.Set(o.OrderID, o)
	return nil
}

// StatusUpdate carries an admin's status-edit submission. Nil pointers mean
// "leave unchanged"; an empty Status means no transition was requested.
type StatusUpdate struct {
	Status         domain.OrderStatus     `json:"status,omitempty"`
	DeliveryStatus *domain.DeliveryStatus `json:"deliveryStatus,omitempty"`
	AdminNote      *string                `json:"adminNote,omitempty"`
	PaidInPerson   *bool                  `json:"paidInPerson,omitempty"`
	AdminPayment   *domain.AdminPayment   `json:"adminPaymentInfo,omitempty"`
}

// StatusUpdateResult reports an applied edit together with the status the
// order held before it, so callers never have to re-read racy state.
type StatusUpdateResult struct {
	Order        domain.Order
	From         domain.OrderStatus
	Transitioned bool
}

// UpdateOrderStatus applies an admin edit under the transition table and
// emits a status-change event for every applied transition. The event's
// DecrementStock flag is set only on pending→approved; that single edge is
// what the inventory side relies on. Transitions are persisted with a
// compare-and-swap on the stored status, so concurrent approvals of the
// same order apply — and publish — exactly once.
type UpdateOrderStatus struct {
	Repo   domain.OrderRepository
	Cache  domain.OrderCache
	Events domain.EventPublisher
	Now    func() time.Time
}

func (uc UpdateOrderStatus) Execute(ctx context.Context, id string, upd StatusUpdate) (StatusUpdateResult, error) {
	o, ok := uc.Cache.Get(id)
	if !ok {
		return StatusUpdateResult{}, domain.ErrNotFound
	}

	from := o.Status
	transitioning := upd.Status != "" && upd.Status != from
	if transitioning {
		if !upd.Status.Known() {
			return StatusUpdateResult{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, upd.Status)
		}
		if !domain.CanTransition(from, upd.Status) {
			return StatusUpdateResult{}, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, from, upd.Status)
		}
	}

	if upd.DeliveryStatus != nil {
		if o.DeliveryType != domain.DeliveryTypeDelivery {
			return StatusUpdateResult{}, fmt.Errorf("%w: delivery status on a %s order", domain.ErrValidation, o.DeliveryType)
		}
		if !upd.DeliveryStatus.Known() {
			return StatusUpdateResult{}, fmt.Errorf("%w: unknown delivery status %q", domain.ErrValidation, *upd.DeliveryStatus)
		}
		o.DeliveryStatus = *upd.DeliveryStatus
	}
	if upd.AdminNote != nil {
		o.AdminNote = *upd.AdminNote
	}
	if upd.PaidInPerson != nil {
		o.PaidInPerson = *upd.PaidInPerson
	}
	if upd.AdminPayment != nil {
		o.AdminPayment = upd.AdminPayment
	}
	if transitioning {
		o.Status = upd.Status
	}

	raw, err := json.Marshal(o)
	if err != nil {
		return StatusUpdateResult{}, err
	}
	if transitioning {
		if err := uc.Repo.UpdateStatus(ctx, o.OrderID, raw, from, o.Status); err != nil {
			return StatusUpdateResult{}, err
		}
	} else {
		if err := uc.Repo.Upsert(ctx, o.OrderID, raw, o.Status); err != nil {
			return StatusUpdateResult{}, err
		}
	}
	uc.Cache.Set(o.OrderID, o)

	res := StatusUpdateResult{Order: o, From: from, Transitioned: transitioning}
	if transitioning && uc.Events != nil {
		now := time.Now
		if uc.Now != nil {
			now = uc.Now
		}
		change := domain.StatusChange{
			OrderID:        o.OrderID,
			From:           from,
			To:             o.Status,
			DecrementStock: domain.TriggersStockDecrement(from, o.Status),
			OccurredAt:     now().UTC(),
		}
		if err := uc.Events.PublishStatusChange(ctx, change); err != nil {
			// the order is already persisted; the caller decides whether to
			// surface the lost event or republish
			return res, fmt.Errorf("status updated, publish failed: %w", err)
		}
	}
	return res, nil
}

// GenerateReceipt — render the printable receipt for one order.
// Delivery/archival of the document is the caller's concern.
type GenerateReceipt struct {
	Cache    domain.OrderCache
	Renderer domain.ReceiptRenderer
}

func (uc GenerateReceipt) Execute(id string) (string, error) {
	o, ok := uc.Cache.Get(id)
	if !ok {
		return "", domain.ErrNotFound
	}
	return uc.Renderer.Render(o)
}
