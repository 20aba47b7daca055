package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-kit/log"

	orders "go-exchange-orders"
	"go-exchange-orders/feed"
	"go-exchange-orders/form"
	"go-exchange-orders/rates"
)

// Server dependencies for HTTP Server functions
type Server struct {
	Form   *form.Form
	Feed   *feed.Feed
	Rates  rates.Service
	Logger log.Logger

	router http.ServeMux
	hub    *hub
}

func NewServer(f *form.Form, fd *feed.Feed, rs rates.Service, logger log.Logger) *Server {
	server := &Server{
		Form:   f,
		Feed:   fd,
		Rates:  rs,
		Logger: logger,
		hub:    newHub(),
	}
	server.routes()
	fd.OnChange(server.broadcastFeed)
	return server
}

func (s *Server) routes() {
	s.router.Handle("/api/orders", s.listOrders())
	s.router.Handle("/api/orders/action", s.orderAction())
	s.router.Handle("/api/form", s.formState())
	s.router.Handle("/api/form/submit", s.submitForm())
	s.router.Handle("/api/rates/", s.lookupRates())
	s.router.Handle("/ws", s.feedSocket())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// listOrders produces the HTTP handler for the order feed view
func (s *Server) listOrders() http.HandlerFunc {

	// response for marshalling the feed to return to clients
	type response struct {
		Orders      []feed.Row `json:"orders"`
		Placeholder string     `json:"placeholder,omitempty"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		response := response{
			Orders: s.Feed.Rows(),
		}
		if len(response.Orders) == 0 {
			response.Placeholder = feed.Placeholder
		}

		enc := json.NewEncoder(rw)
		err := enc.Encode(&response)
		if err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
			rw.Write([]byte(`{"error": "failed json encoding"}`))
			return
		}
	}
}

// orderAction produces the HTTP handler for completing or cancelling an order
func (s *Server) orderAction() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		OrderID string `json:"orderId"`
		Action  string `json:"action"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		bytes, err := io.ReadAll(r.Body)
		if err != nil {
			rw.WriteHeader(http.StatusBadRequest)
			rw.Write([]byte(`{"error": "invalid request"}`))
			return
		}

		var request request
		err = json.Unmarshal(bytes, &request)
		if err != nil {
			rw.WriteHeader(http.StatusBadRequest)
			rw.Write([]byte(`{"error": "invalid json"}`))
			return
		}

		// the store tolerates unknown ids and terminal orders, so only a
		// bogus action is an error
		if !s.Feed.Dispatch(request.OrderID, request.Action) {
			rw.WriteHeader(http.StatusBadRequest)
			rw.Write([]byte(`{"error": "unknown action"}`))
			return
		}

		rw.Write([]byte(`{"ok": true}`))
	}
}

// formState produces the HTTP handler for reading and updating the order
// form draft
func (s *Server) formState() http.HandlerFunc {

	// request for unmarshalling partial field updates posted by clients
	type request struct {
		Type         *orders.OrderType `json:"type"`
		FromCurrency *orders.Currency  `json:"fromCurrency"`
		ToCurrency   *orders.Currency  `json:"toCurrency"`
		Amount       *orders.Amount    `json:"amount"`
		Rate         *orders.Rate      `json:"rate"`
	}

	// response for marshalling the draft state to return to clients
	type response struct {
		Values form.Values       `json:"values"`
		Errors map[string]string `json:"errors"`
		Total  string            `json:"total,omitempty"`
	}

	writeState := func(rw http.ResponseWriter) {
		response := response{
			Values: s.Form.Values(),
			Errors: s.Form.Errors(),
		}
		if total, ok := s.Form.Total(); ok {
			response.Total = orders.FormatAmount(total, response.Values.ToCurrency)
		}

		enc := json.NewEncoder(rw)
		err := enc.Encode(&response)
		if err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
			rw.Write([]byte(`{"error": "failed json encoding"}`))
			return
		}
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		if r.Method != "POST" {
			writeState(rw)
			return
		}

		bytes, err := io.ReadAll(r.Body)
		if err != nil {
			rw.WriteHeader(http.StatusBadRequest)
			rw.Write([]byte(`{"error": "invalid request"}`))
			return
		}

		var request request
		err = json.Unmarshal(bytes, &request)
		if err != nil {
			rw.WriteHeader(http.StatusBadRequest)
			rw.Write([]byte(`{"error": "invalid json"}`))
			return
		}

		if request.Type != nil {
			s.Form.SetType(*request.Type)
		}
		if request.Amount != nil {
			s.Form.SetAmount(*request.Amount)
		}
		if request.Rate != nil {
			s.Form.SetRate(*request.Rate)
		}
		if request.FromCurrency != nil || request.ToCurrency != nil {
			values := s.Form.Values()
			from := values.FromCurrency
			to := values.ToCurrency
			if request.FromCurrency != nil {
				from = *request.FromCurrency
			}
			if request.ToCurrency != nil {
				to = *request.ToCurrency
			}
			// detached from the request context: the rate lookup outlives
			// this response
			s.Form.SetCurrencies(context.Background(), from, to)
		}

		writeState(rw)
	}
}

// submitForm produces the HTTP handler for form submission
func (s *Server) submitForm() http.HandlerFunc {

	// rejected for marshalling failed submissions
	type rejected struct {
		Errors map[string]string `json:"errors"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		order, errs, ok := s.Form.Submit()
		if !ok {
			rw.WriteHeader(http.StatusUnprocessableEntity)
			enc := json.NewEncoder(rw)
			_ = enc.Encode(&rejected{Errors: errs})
			return
		}

		rw.WriteHeader(http.StatusCreated)
		enc := json.NewEncoder(rw)
		err := enc.Encode(&order)
		if err != nil {
			s.Logger.Log("msg", "failed json encoding", "err", err)
		}
	}
}

// lookupRates produces the HTTP handler proxying the rate lookup service
func (s *Server) lookupRates() http.HandlerFunc {

	// response for marshalling rates to return to clients
	type response struct {
		Currency orders.Currency `json:"currency"`
		Rates    orders.Rates    `json:"rates"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		currency := orders.Currency(strings.TrimPrefix(r.URL.Path, "/api/rates/"))
		if currency == "" {
			rw.WriteHeader(http.StatusBadRequest)
			rw.Write([]byte(`{"error": "missing currency"}`))
			return
		}

		result, err := s.Rates.ExchangeRates(r.Context(), currency)
		if err != nil {
			if errors.Is(err, rates.ErrRateNotFound) {
				rw.WriteHeader(http.StatusNotFound)
				rw.Write([]byte(`{"error": "rate not found"}`))
				return
			}
			rw.WriteHeader(http.StatusBadGateway)
			rw.Write([]byte(`{"error": "rate lookup failed"}`))
			return
		}

		response := response{
			Currency: currency,
			Rates:    result,
		}

		enc := json.NewEncoder(rw)
		err = enc.Encode(&response)
		if err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
			rw.Write([]byte(`{"error": "failed json encoding"}`))
			return
		}
	}
}
