package feed

import (
	"fmt"
	"strings"

	orders "go-exchange-orders"
	"go-exchange-orders/store"
)

// Actions exposed on an active order.
const (
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// Placeholder shown instead of the list when the store holds no orders.
const Placeholder = "No orders available"

// badgeColors maps a status to its badge color. Presentation detail only.
var badgeColors = map[orders.OrderStatus]string{
	orders.StatusActive:    "blue",
	orders.StatusCompleted: "green",
	orders.StatusCancelled: "red",
}

// Row the rendered view of one order.
type Row struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Amount    string             `json:"amount"`
	RateLine  string             `json:"rate"`
	Total     string             `json:"total"`
	CreatedBy string             `json:"createdBy"`
	Status    orders.OrderStatus `json:"status"`
	Badge     string             `json:"badge"`
	Actions   []string           `json:"actions,omitempty"`
}

// Feed renders the store's orders and dispatches row actions back to it.
// It holds no orders of its own.
type Feed struct {
	store *store.Store
}

// New constructs a Feed over a store.
func New(s *store.Store) *Feed {
	return &Feed{store: s}
}

// OnChange registers a listener for store mutations, the feed's re-render
// trigger.
func (f *Feed) OnChange(fn func()) {
	f.store.OnChange(fn)
}

// Rows renders every order, newest first. Totals are recomputed here, not
// read back from the order.
func (f *Feed) Rows() []Row {
	list := f.store.List()
	rows := make([]Row, 0, len(list))
	for _, o := range list {
		rows = append(rows, renderRow(o))
	}
	return rows
}

func renderRow(o orders.Order) Row {
	row := Row{
		ID:        o.ID,
		Title:     fmt.Sprintf("%v: %v → %v", strings.ToUpper(string(o.Type)), o.FromCurrency, o.ToCurrency),
		Amount:    fmt.Sprintf("%v %v", float64(o.Amount), o.FromCurrency),
		RateLine:  fmt.Sprintf("1 %v = %v %v", o.FromCurrency, float64(o.Rate), o.ToCurrency),
		Total:     orders.FormatAmount(o.Total(), o.ToCurrency),
		CreatedBy: o.UserName,
		Status:    o.Status,
		Badge:     badgeColor(o.Status),
	}
	if o.Status == orders.StatusActive {
		row.Actions = []string{ActionComplete, ActionCancel}
	}
	return row
}

func badgeColor(s orders.OrderStatus) string {
	if c, ok := badgeColors[s]; ok {
		return c
	}
	return "gray"
}

// Dispatch applies a row action to an order. Unknown actions report false;
// unknown ids and already-terminal orders are ignored by the store.
func (f *Feed) Dispatch(id string, action string) bool {
	switch action {
	case ActionComplete:
		f.store.SetStatus(id, orders.StatusCompleted)
	case ActionCancel:
		f.store.SetStatus(id, orders.StatusCancelled)
	default:
		return false
	}
	return true
}
