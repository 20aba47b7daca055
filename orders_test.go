package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRate(t *testing.T) {
	assert.Equal(t, Rate(0.9234), RoundRate(0.92341))
	assert.Equal(t, Rate(0.9235), RoundRate(0.92345))
	assert.Equal(t, Rate(1), RoundRate(1))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "125.00 EUR", FormatAmount(125, "EUR"))
	assert.Equal(t, "0.50 GBP", FormatAmount(0.5, "GBP"))
}

func TestOrder_Total(t *testing.T) {
	o := Order{Amount: 100, Rate: 1.25}
	assert.Equal(t, Amount(125), o.Total())
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
