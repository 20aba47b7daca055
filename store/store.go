package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	orders "go-exchange-orders"
)

// Store owns the session's order collection. Orders are held newest-first
// and are never removed; terminal orders stay visible in the feed. The
// store cannot fail: bad transitions are ignored rather than reported.
type Store struct {
	// lock synchronizes access to the collection
	lock sync.RWMutex

	// orders the collection, newest first
	orders []orders.Order

	// listeners run after every mutation that changed state. Listeners are
	// registered during wiring, before the store takes traffic.
	listeners []func()
}

// New constructs an empty Store.
func New() *Store {
	return &Store{}
}

// OnChange registers a listener invoked after each append and each
// effective status transition.
func (s *Store) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Append materializes a draft into an order: fresh unique id, creation
// timestamp, status active. The new order is prepended so the collection
// stays newest-first.
func (s *Store) Append(d orders.Draft) orders.Order {
	order := orders.Order{
		ID:           uuid.NewString(),
		Type:         d.Type,
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		Amount:       d.Amount,
		Rate:         d.Rate,
		UserID:       d.UserID,
		UserName:     d.UserName,
		CreatedAt:    time.Now().UTC(),
		Status:       orders.StatusActive,
	}

	s.lock.Lock()
	s.orders = append([]orders.Order{order}, s.orders...)
	s.lock.Unlock()

	s.notify()
	return order
}

// SetStatus transitions an active order to a terminal status. Unknown ids,
// non-terminal targets and orders already in a terminal state are silently
// ignored. Returns whether the order changed.
func (s *Store) SetStatus(id string, target orders.OrderStatus) bool {
	if !target.Terminal() {
		return false
	}

	s.lock.Lock()
	changed := false
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].Status == orders.StatusActive {
			s.orders[i].Status = target
			changed = true
		}
		break
	}
	s.lock.Unlock()

	if changed {
		s.notify()
	}
	return changed
}

// List returns a snapshot of the collection, newest first. Status
// transitions never reorder it.
func (s *Store) List() []orders.Order {
	s.lock.RLock()
	defer s.lock.RUnlock()
	snapshot := make([]orders.Order, len(s.orders))
	copy(snapshot, s.orders)
	return snapshot
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}
