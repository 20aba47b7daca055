package main

import (
	"os"

	"github.com/go-kit/log"

	"go-exchange-orders/feed"
	"go-exchange-orders/form"
	"go-exchange-orders/http"
	"go-exchange-orders/rates"
	"go-exchange-orders/session"
	"go-exchange-orders/store"

	nhttp "net/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	ratesService := rates.NewService()
	ratesService = rates.NewLoggingService(log.With(logger, "component", "rates"), ratesService)

	orderStore := store.New()
	orderFeed := feed.New(orderStore)

	// outside the chat platform there is no session user; the form falls
	// back to the sentinel identity
	var host session.Host = session.NopHost{}
	host.Ready()
	host.Expand()

	orderForm := form.New(ratesService, session.None{}, orderStore.Append, log.With(logger, "component", "form"))

	handler := http.NewServer(orderForm, orderFeed, ratesService, log.With(logger, "component", "http"))

	logger.Log("msg", "listening", "addr", ":8080")
	err := nhttp.ListenAndServe(":8080", handler)
	if err != nil {
		logger.Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}
