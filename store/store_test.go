package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	orders "go-exchange-orders"
)

func draft() orders.Draft {
	return orders.Draft{
		Type:         orders.TypeBuy,
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Amount:       100,
		Rate:         1.25,
		UserID:       "42",
		UserName:     "alice",
	}
}

func TestStore_Append(t *testing.T) {
	s := New()

	before := time.Now().UTC()
	order := s.Append(draft())
	after := time.Now().UTC()

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, orders.StatusActive, order.Status)
	assert.Equal(t, orders.TypeBuy, order.Type)
	assert.Equal(t, orders.Currency("USD"), order.FromCurrency)
	assert.Equal(t, orders.Currency("EUR"), order.ToCurrency)
	assert.Equal(t, orders.Amount(100), order.Amount)
	assert.Equal(t, orders.Rate(1.25), order.Rate)
	assert.Equal(t, "42", order.UserID)
	assert.Equal(t, "alice", order.UserName)
	assert.False(t, order.CreatedAt.Before(before))
	assert.False(t, order.CreatedAt.After(after))
}

func TestStore_AppendUniqueIds(t *testing.T) {
	s := New()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		order := s.Append(draft())
		assert.False(t, seen[order.ID], "id reused: %v", order.ID)
		seen[order.ID] = true
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := New()

	first := s.Append(draft())
	second := s.Append(draft())
	third := s.Append(draft())

	list := s.List()
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	// status transitions never reorder the feed
	s.SetStatus(second.ID, orders.StatusCompleted)
	s.SetStatus(third.ID, orders.StatusCancelled)

	list = s.List()
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestStore_SetStatus(t *testing.T) {
	s := New()
	order := s.Append(draft())

	assert.True(t, s.SetStatus(order.ID, orders.StatusCompleted))
	assert.Equal(t, orders.StatusCompleted, s.List()[0].Status)
}

func TestStore_SetStatusFirstTransitionWins(t *testing.T) {
	s := New()
	order := s.Append(draft())

	assert.True(t, s.SetStatus(order.ID, orders.StatusCompleted))
	assert.False(t, s.SetStatus(order.ID, orders.StatusCancelled))
	assert.Equal(t, orders.StatusCompleted, s.List()[0].Status)
}

func TestStore_SetStatusUnknownId(t *testing.T) {
	s := New()
	order := s.Append(draft())

	assert.False(t, s.SetStatus("no-such-id", orders.StatusCancelled))
	assert.Equal(t, orders.StatusActive, s.List()[0].Status)
	assert.Equal(t, order.ID, s.List()[0].ID)
}

func TestStore_SetStatusNonTerminalTarget(t *testing.T) {
	s := New()
	order := s.Append(draft())

	assert.False(t, s.SetStatus(order.ID, orders.StatusActive))
	assert.Equal(t, orders.StatusActive, s.List()[0].Status)
}

func TestStore_ListIsSnapshot(t *testing.T) {
	s := New()
	s.Append(draft())

	list := s.List()
	list[0].Status = orders.StatusCancelled

	assert.Equal(t, orders.StatusActive, s.List()[0].Status)
}

func TestStore_OnChange(t *testing.T) {
	s := New()

	changes := 0
	s.OnChange(func() { changes++ })

	order := s.Append(draft())
	assert.Equal(t, 1, changes)

	s.SetStatus(order.ID, orders.StatusCompleted)
	assert.Equal(t, 2, changes)

	// no-op transitions don't fire
	s.SetStatus(order.ID, orders.StatusCancelled)
	s.SetStatus("no-such-id", orders.StatusCompleted)
	assert.Equal(t, 2, changes)
}
