package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/example/akura-order-service/internal/domain"
	"github.com/example/akura-order-service/internal/receipt"
	"github.com/example/akura-order-service/internal/usecase"
)

// Deps is everything the HTTP surface needs. Sink may be nil when receipt
// archival is disabled.
type Deps struct {
	Get     usecase.GetOrderByID
	List    usecase.ListOrders
	Update  usecase.UpdateOrderStatus
	Receipt usecase.GenerateReceipt
	Sink    domain.DocumentSink
	Log     zerolog.Logger
}

type Server struct {
	Router *mux.Router
	deps   Deps
}

func NewServer(d Deps) *Server {
	s := &Server{Router: mux.NewRouter(), deps: d}
	s.Router.Use(s.logRequests)
	s.Router.HandleFunc("/api/orders", s.handleList).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/order/{id}", s.handleGet).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/order/{id}/status", s.handleUpdateStatus).Methods(http.MethodPatch)
	s.Router.HandleFunc("/api/order/{id}/receipt", s.handleReceipt).Methods(http.MethodGet)
	s.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.Router.PathPrefix("/").Handler(http.FileServer(http.Dir("web")))
	return s
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	o, ok := s.deps.Get.Execute(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := usecase.ListFilter{
		Status: q.Get("status"),
		Limit:  atoiOr(q.Get("limit"), 50),
		Offset: atoiOr(q.Get("offset"), 0),
	}
	orders := s.deps.List.Execute(f)
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var upd usecase.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	res, err := s.deps.Update.Execute(r.Context(), id, upd)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
		return
	case errors.Is(err, domain.ErrIllegalTransition):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		s.deps.Log.Error().Err(err).Str("order_id", id).Msg("status update failed")
		writeError(w, http.StatusInternalServerError, "status update failed")
		return
	}
	if res.Transitioned {
		statusTransitions.WithLabelValues(string(res.From), string(res.Order.Status)).Inc()
	}
	writeJSON(w, http.StatusOK, res.Order)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, err := s.deps.Receipt.Execute(id)
	var invalid *receipt.InvalidOrderError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
		return
	case errors.As(err, &invalid):
		writeError(w, http.StatusUnprocessableEntity, invalid.Error())
		return
	case err != nil:
		s.deps.Log.Error().Err(err).Str("order_id", id).Msg("receipt render failed")
		writeError(w, http.StatusInternalServerError, "receipt render failed")
		return
	}
	receiptsRendered.Inc()
	if s.deps.Sink != nil {
		// archival is best effort: a full archive disk never blocks printing
		if err := s.deps.Sink.Deliver(r.Context(), id, doc); err != nil {
			s.deps.Log.Warn().Err(err).Str("order_id", id).Msg("receipt archive failed")
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
