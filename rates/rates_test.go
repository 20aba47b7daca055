package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	orders "go-exchange-orders"
)

func TestService_ExchangeRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.True(t, strings.HasSuffix(req.URL.String(), "/USD"))
		response := `{
			"result": "success",
			"base_code": "USD",
			"rates": {
				"EUR": 0.92341,
				"GBP": 0.79
			}
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := service{
		url: server.URL,
	}

	rates, err := s.ExchangeRates(context.Background(), "USD")

	assert.Nil(t, err)
	assert.Equal(t, orders.Rate(0.92341), rates["EUR"])
	assert.Equal(t, orders.Rate(0.79), rates["GBP"])
}

func TestService_ExchangeRatesMissingRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, _ = rw.Write([]byte(`{"result": "error", "error-type": "unsupported-code"}`))
	}))
	defer server.Close()

	s := service{
		url: server.URL,
	}

	_, err := s.ExchangeRates(context.Background(), "XXX")

	assert.True(t, errors.Is(err, ErrRateNotFound))
}

func TestService_ExchangeRatesBadJson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, _ = rw.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	s := service{
		url: server.URL,
	}

	_, err := s.ExchangeRates(context.Background(), "USD")

	assert.NotNil(t, err)
	assert.False(t, errors.Is(err, ErrRateNotFound))
}

func TestService_ExchangeRatesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		time.Sleep(10 * time.Millisecond)
		_, _ = rw.Write([]byte("{}"))
	}))
	defer server.Close()

	s := service{
		url: server.URL,
	}
	s.client.Timeout = 1 * time.Millisecond

	_, err := s.ExchangeRates(context.Background(), "USD")

	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "Client.Timeout")) // fragile :-(
}

type mock struct {
	rates orders.Rates
	err   error
}

func (m *mock) ExchangeRates(_ context.Context, _ orders.Currency) (orders.Rates, error) {
	return m.rates, m.err
}

func TestPairRate(t *testing.T) {
	s := &mock{
		rates: orders.Rates{"EUR": 0.92341, "GBP": 0.79},
	}

	rate, err := PairRate(context.Background(), s, "USD", "EUR")

	assert.Nil(t, err)
	assert.Equal(t, orders.Rate(0.92341), rate)
}

func TestPairRate_TargetMissing(t *testing.T) {
	s := &mock{
		rates: orders.Rates{"GBP": 0.79},
	}

	_, err := PairRate(context.Background(), s, "USD", "EUR")

	assert.True(t, errors.Is(err, ErrRateNotFound))
}

func TestPairRate_LookupFails(t *testing.T) {
	s := &mock{
		err: errors.New("boom"),
	}

	_, err := PairRate(context.Background(), s, "USD", "EUR")

	assert.NotNil(t, err)
	assert.False(t, errors.Is(err, ErrRateNotFound))
}
