package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrdersProcessed counts orders accepted off the message stream. It lives
// here with the other service metrics; the subscriber wiring increments it.
var OrdersProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "akura_orders_processed_total",
	Help: "Orders accepted from the incoming message stream.",
})

var statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "akura_status_transitions_total",
	Help: "Applied order status transitions.",
}, []string{"from", "to"})

var receiptsRendered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "akura_receipts_rendered_total",
	Help: "Receipts rendered through the HTTP API.",
})
