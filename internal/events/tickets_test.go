package events

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketLabelSoldOut(t *testing.T) {
	label, show := FormatTicketLabel(0)
	assert.True(t, show)
	assert.Equal(t, "SOLD OUT", label)
}

func TestFormatTicketLabelLowStock(t *testing.T) {
	for v := 1; v <= 10; v++ {
		label, show := FormatTicketLabel(v)
		assert.True(t, show, "value %d", v)
		assert.Equal(t, fmt.Sprintf("%d seats left", v), label)
	}
}

func TestFormatTicketLabelHealthyStock(t *testing.T) {
	for _, v := range []int{11, 12, 100, 100000} {
		label, show := FormatTicketLabel(v)
		assert.False(t, show, "value %d", v)
		assert.Empty(t, label)
	}
}

func TestFormatTicketLabelNegative(t *testing.T) {
	label, show := FormatTicketLabel(-1)
	assert.False(t, show)
	assert.Empty(t, label)
}
