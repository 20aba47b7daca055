package rates

import (
	"context"
	"time"

	"github.com/go-kit/log"

	orders "go-exchange-orders"
)

// loggingService decorates a rates.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) ExchangeRates(ctx context.Context, currency orders.Currency) (rates orders.Rates, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "exchange_rates",
			"currency", currency,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ExchangeRates(ctx, currency)
}
