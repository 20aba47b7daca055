package form

import (
	"context"
	"sync"

	"github.com/go-kit/log"

	orders "go-exchange-orders"
	"go-exchange-orders/rates"
	"go-exchange-orders/session"
)

// Field names keying validation messages.
const (
	FieldFromCurrency = "fromCurrency"
	FieldToCurrency   = "toCurrency"
	FieldAmount       = "amount"
	FieldRate         = "rate"
)

// Messages shown next to a failing field.
const (
	msgSelectCurrency = "Select a currency"
	msgSameCurrency   = "Cannot be the same as source currency"
	msgAmountPositive = "Amount must be positive"
	msgRatePositive   = "Rate must be positive"
)

// CreateFunc hands a validated draft to the order store and returns the
// finished order.
type CreateFunc func(orders.Draft) orders.Order

// Values the draft state collected by the form.
type Values struct {
	Type         orders.OrderType `json:"type"`
	FromCurrency orders.Currency  `json:"fromCurrency"`
	ToCurrency   orders.Currency  `json:"toCurrency"`
	Amount       orders.Amount    `json:"amount"`
	Rate         orders.Rate      `json:"rate"`
}

// Form collects an order draft, keeps the rate field current for the
// selected currency pair and builds new orders on submit.
type Form struct {
	lock sync.Mutex

	values Values
	errors map[string]string

	rates  rates.Service
	users  session.UserProvider
	create CreateFunc
	logger log.Logger
}

// New constructs a Form in its initial state: type buy, currencies unset,
// amount and rate zero.
func New(rs rates.Service, users session.UserProvider, create CreateFunc, logger log.Logger) *Form {
	return &Form{
		values: initialValues(),
		errors: map[string]string{},
		rates:  rs,
		users:  users,
		create: create,
		logger: logger,
	}
}

func initialValues() Values {
	return Values{Type: orders.TypeBuy}
}

// Values returns a copy of the current draft state.
func (f *Form) Values() Values {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.values
}

// Errors returns the field messages recorded by the last validation.
func (f *Form) Errors() map[string]string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return copyErrors(f.errors)
}

func (f *Form) SetType(t orders.OrderType) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.values.Type = t
}

func (f *Form) SetAmount(a orders.Amount) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.values.Amount = a
}

func (f *Form) SetRate(r orders.Rate) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.values.Rate = r
}

// SetCurrencies updates the pair. When both sides are set and differ, the
// rate field is refreshed asynchronously; the form stays editable while
// the lookup is in flight.
func (f *Form) SetCurrencies(ctx context.Context, from orders.Currency, to orders.Currency) {
	f.lock.Lock()
	f.values.FromCurrency = from
	f.values.ToCurrency = to
	f.lock.Unlock()

	if from != "" && to != "" && from != to {
		go f.refreshRate(ctx, from, to)
	}
}

// refreshRate fetches the pair rate and writes it into the draft, rounded
// to 4 decimal places. Lookups are not sequenced: when an older lookup
// lands after a newer one its value wins, as in-flight requests are never
// cancelled. A failed lookup keeps the current rate and is logged only;
// rate refresh is best effort and never blocks submission.
func (f *Form) refreshRate(ctx context.Context, from orders.Currency, to orders.Currency) {
	rate, err := rates.PairRate(ctx, f.rates, from, to)
	if err != nil {
		f.logger.Log("msg", "rate lookup failed", "from", from, "to", to, "err", err)
		return
	}

	f.lock.Lock()
	f.values.Rate = orders.RoundRate(rate)
	f.lock.Unlock()
}

// Validate checks every field and records a message for each failure.
func (f *Form) Validate() map[string]string {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.errors = validate(f.values)
	return copyErrors(f.errors)
}

func validate(v Values) map[string]string {
	errs := map[string]string{}
	if v.FromCurrency == "" {
		errs[FieldFromCurrency] = msgSelectCurrency
	}
	if v.ToCurrency == "" {
		errs[FieldToCurrency] = msgSelectCurrency
	} else if v.ToCurrency == v.FromCurrency {
		errs[FieldToCurrency] = msgSameCurrency
	}
	if v.Amount <= 0 {
		errs[FieldAmount] = msgAmountPositive
	}
	if v.Rate <= 0 {
		errs[FieldRate] = msgRatePositive
	}
	return errs
}

// Total returns amount × rate rounded to 2 decimal places. The bool
// reports whether every contributing field is populated and the summary
// should be shown. Purely derived, never stored.
func (f *Form) Total() (orders.Amount, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	v := f.values
	if v.FromCurrency == "" || v.ToCurrency == "" || v.Amount <= 0 || v.Rate <= 0 {
		return 0, false
	}
	return orders.RoundAmount(orders.Amount(float64(v.Amount) * float64(v.Rate))), true
}

// Submit validates the draft and, when every field passes, hands a new
// order draft to the create callback and resets the form. On failure the
// field messages are returned and recorded, and nothing is created.
// Identity comes from the host session, with the sentinel fallbacks.
func (f *Form) Submit() (orders.Order, map[string]string, bool) {
	f.lock.Lock()
	errs := validate(f.values)
	if len(errs) > 0 {
		f.errors = errs
		f.lock.Unlock()
		return orders.Order{}, copyErrors(errs), false
	}
	v := f.values
	f.values = initialValues()
	f.errors = map[string]string{}
	f.lock.Unlock()

	user := session.Resolve(f.users)
	order := f.create(orders.Draft{
		Type:         v.Type,
		FromCurrency: v.FromCurrency,
		ToCurrency:   v.ToCurrency,
		Amount:       v.Amount,
		Rate:         v.Rate,
		UserID:       user.ID,
		UserName:     user.Name,
	})
	return order, nil, true
}

func copyErrors(errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
