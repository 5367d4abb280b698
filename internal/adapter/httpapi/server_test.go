package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/example/akura-order-service/internal/adapter/cache"
	"github.com/example/akura-order-service/internal/adapter/docsink"
	"github.com/example/akura-order-service/internal/domain"
	"github.com/example/akura-order-service/internal/receipt"
	"github.com/example/akura-order-service/internal/usecase"
)

type stubRepo struct{}

func (stubRepo) Upsert(context.Context, string, []byte, domain.OrderStatus) error { return nil }
func (stubRepo) UpdateStatus(context.Context, string, []byte, domain.OrderStatus, domain.OrderStatus) error {
	return nil
}
func (stubRepo) LoadAll(context.Context, func(string, []byte) error) error { return nil }

type stubPublisher struct{}

func (stubPublisher) PublishStatusChange(context.Context, domain.StatusChange) error { return nil }

func seedOrder(id string, status domain.OrderStatus) domain.Order {
	return domain.Order{
		OrderID: id,
		Items: []domain.OrderItem{
			{ProductName: "Grammar Book", Quantity: 2, PriceAtTime: 500},
		},
		Subtotal:     1000,
		TotalAmount:  1000,
		Status:       status,
		DeliveryType: domain.DeliveryTypePickup,
		CreatedAt:    time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
	}
}

func newTestServer(orders ...domain.Order) *Server {
	c := cache.NewMemoryOrderCache()
	for _, o := range orders {
		c.Set(o.OrderID, o)
	}
	return NewServer(Deps{
		Get:     usecase.GetOrderByID{Cache: c},
		List:    usecase.ListOrders{Cache: c},
		Update:  usecase.UpdateOrderStatus{Repo: stubRepo{}, Cache: c, Events: stubPublisher{}},
		Receipt: usecase.GenerateReceipt{Cache: c, Renderer: receipt.Renderer{}},
		Sink:    docsink.Discard{},
		Log:     zerolog.Nop(),
	})
}

func TestHandleGet(t *testing.T) {
	srv := newTestServer(seedOrder("AK-0001", domain.StatusPending))

	tests := []struct {
		name     string
		orderID  string
		wantCode int
	}{
		{"existing order", "AK-0001", http.StatusOK},
		{"non-existing order", "missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/order/"+tt.orderID, nil)
			w := httptest.NewRecorder()
			srv.Router.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("handleGet() = %v, want %v", w.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleList(t *testing.T) {
	srv := newTestServer(
		seedOrder("AK-0001", domain.StatusPending),
		seedOrder("AK-0002", domain.StatusApproved),
	)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 2},
		{"pending only", "?status=pending", 1},
		{"no match", "?status=rejected", 0},
		{"paged", "?limit=1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders"+tt.query, nil)
			w := httptest.NewRecorder()
			srv.Router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("handleList() = %v, want 200", w.Code)
			}
			var got []domain.Order
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestHandleUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		orderID  string
		body     string
		wantCode int
	}{
		{"approve pending", "AK-0001", `{"status":"approved"}`, http.StatusOK},
		{"complete pending directly", "AK-0001", `{"status":"completed"}`, http.StatusConflict},
		{"unknown status", "AK-0001", `{"status":"archived"}`, http.StatusUnprocessableEntity},
		{"delivery status on pickup", "AK-0001", `{"deliveryStatus":"delivered"}`, http.StatusUnprocessableEntity},
		{"missing order", "nope", `{"status":"approved"}`, http.StatusNotFound},
		{"bad body", "AK-0001", `{broken`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(seedOrder("AK-0001", domain.StatusPending))
			req := httptest.NewRequest(http.MethodPatch, "/api/order/"+tt.orderID+"/status", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.Router.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("handleUpdateStatus() = %v, want %v (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestHandleUpdateStatusReturnsOrder(t *testing.T) {
	srv := newTestServer(seedOrder("AK-0001", domain.StatusPending))
	req := httptest.NewRequest(http.MethodPatch, "/api/order/AK-0001/status",
		strings.NewReader(`{"status":"approved","adminNote":"verified slip"}`))
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %v", w.Code)
	}
	var got domain.Order
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	if got.AdminNote != "verified slip" {
		t.Errorf("adminNote = %q", got.AdminNote)
	}
}

func TestHandleUpdateStatusCountsTransition(t *testing.T) {
	counter := statusTransitions.WithLabelValues("pending", "approved")
	before := testutil.ToFloat64(counter)

	srv := newTestServer(seedOrder("AK-0001", domain.StatusPending))
	req := httptest.NewRequest(http.MethodPatch, "/api/order/AK-0001/status",
		strings.NewReader(`{"status":"approved"}`))
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %v", w.Code)
	}

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("pending->approved transition count delta = %v, want 1", got)
	}

	// a plain note edit is not a transition and must not count
	req = httptest.NewRequest(http.MethodPatch, "/api/order/AK-0001/status",
		strings.NewReader(`{"adminNote":"checked"}`))
	w = httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %v", w.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("count delta after note edit = %v, want still 1", got)
	}
}

func TestHandleReceipt(t *testing.T) {
	srv := newTestServer(seedOrder("AK-0001", domain.StatusApproved))

	req := httptest.NewRequest(http.MethodGet, "/api/order/AK-0001/receipt", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %v", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "AK-0001") {
		t.Error("receipt missing order id")
	}
	if !strings.Contains(body, "Rs. 1,000") {
		t.Error("receipt missing formatted total")
	}
}

func TestHandleReceiptNotFound(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/order/missing/receipt", nil)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %v, want 404", w.Code)
	}
}
