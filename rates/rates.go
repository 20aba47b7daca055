package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	orders "go-exchange-orders"
)

const ApiUrlBase = "https://open.er-api.com/v6/latest"

// ErrRateNotFound the provider answered but had no rate for the requested
// currency. Match with errors.Is; any other error from this package is a
// transport or decoding failure.
var ErrRateNotFound = errors.New("exchange rate not found")

// Service wraps the exchange rate provider REST API
type Service interface {
	ExchangeRates(ctx context.Context, currency orders.Currency) (orders.Rates, error)
}

// service rate provider API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid rates Service.
func NewService() Service {
	return &service{
		url: ApiUrlBase,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ExchangeRates loads the current rates against a given currency. Each call
// is independent: no retry, no caching. The response schema is fixed by the
// provider, a JSON body with a "rates" object of numeric rates.
func (s *service) ExchangeRates(ctx context.Context, currency orders.Currency) (orders.Rates, error) {
	type Response struct {
		Rates map[string]float64 `json:"rates"` // maps currency codes to rates
	}

	url := fmt.Sprintf("%v/%v", s.url, currency)

	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	var response Response
	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}

	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	if response.Rates == nil {
		return nil, fmt.Errorf("rates for [%v]: %w", currency, ErrRateNotFound)
	}

	rates := orders.Rates{}
	for k, v := range response.Rates {
		rates[orders.Currency(k)] = orders.Rate(v)
	}

	return rates, nil
}

// PairRate looks up the current rate from one currency to another. A
// mapping without an entry for the target currency is ErrRateNotFound.
func PairRate(ctx context.Context, s Service, from orders.Currency, to orders.Currency) (orders.Rate, error) {
	rates, err := s.ExchangeRates(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("pair rate [%v -> %v]: %w", from, to, err)
	}

	rate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("pair rate [%v -> %v]: %w", from, to, ErrRateNotFound)
	}

	return rate, nil
}
