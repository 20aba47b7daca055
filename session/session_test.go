package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	orders "go-exchange-orders"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		provider UserProvider
		want     orders.User
	}{
		{
			"full identity",
			Static{User: orders.User{ID: "42", Name: "alice"}},
			orders.User{ID: "42", Name: "alice"},
		},
		{
			"no session user",
			None{},
			orders.User{ID: "unknown", Name: "Anonymous"},
		},
		{
			"missing name",
			Static{User: orders.User{ID: "42"}},
			orders.User{ID: "42", Name: "Anonymous"},
		},
		{
			"missing id",
			Static{User: orders.User{Name: "alice"}},
			orders.User{ID: "unknown", Name: "alice"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.provider))
		})
	}
}
