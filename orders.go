package orders

import (
	"fmt"
	"math"
	"time"
)

// Currency a currency code
type Currency string

// Amount a monetary amount... which should be a float...
type Amount float64

// Rate an exchange rate, units of the target currency per 1 unit of the source
type Rate float64

type Rates map[Currency]Rate

// SupportedCurrencies the codes offered by the form selects
var SupportedCurrencies = []Currency{"USD", "EUR", "GBP", "RUB", "AED"}

// OrderType the side of an exchange order
type OrderType string

const (
	TypeBuy  OrderType = "buy"
	TypeSell OrderType = "sell"
)

// OrderStatus lifecycle state of an order
type OrderStatus string

const (
	StatusActive    OrderStatus = "active"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order a buy/sell intent with a lifecycle state. Not a settlement: nothing
// is ever executed against an order, it only moves from active to one
// terminal status.
type Order struct {
	ID           string      `json:"id"`
	Type         OrderType   `json:"type"`
	FromCurrency Currency    `json:"fromCurrency"`
	ToCurrency   Currency    `json:"toCurrency"`
	Amount       Amount      `json:"amount"`
	Rate         Rate        `json:"rate"`
	UserID       string      `json:"userId"`
	UserName     string      `json:"userName"`
	CreatedAt    time.Time   `json:"createdAt"`
	Status       OrderStatus `json:"status"`
}

// Total the amount in the target currency. Derived at render time, never
// stored on the order.
func (o Order) Total() Amount {
	return Amount(float64(o.Amount) * float64(o.Rate))
}

// Draft an order as collected by the form, missing id/createdAt/status.
type Draft struct {
	Type         OrderType
	FromCurrency Currency
	ToCurrency   Currency
	Amount       Amount
	Rate         Rate
	UserID       string
	UserName     string
}

// User identity exposed by the host platform session.
type User struct {
	ID   string
	Name string
}

// Fallback identity used when the host session exposes no user.
const (
	UnknownUserID = "unknown"
	AnonymousName = "Anonymous"
)

// RoundRate rounds a fetched rate to 4 decimal places for the form field.
func RoundRate(r Rate) Rate {
	return Rate(math.Round(float64(r)*10000) / 10000)
}

// RoundAmount rounds a derived amount to 2 decimal places.
func RoundAmount(a Amount) Amount {
	return Amount(math.Round(float64(a)*100) / 100)
}

// FormatAmount formats a display amount with 2 decimal places and the
// currency code, e.g. "125.00 EUR".
func FormatAmount(a Amount, c Currency) string {
	return fmt.Sprintf("%.2f %v", float64(a), c)
}
