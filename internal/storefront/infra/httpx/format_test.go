package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := map[int64]string{
		0:         "₹0",
		499:       "₹499",
		999:       "₹999",
		1000:      "₹1,000",
		49900:     "₹49,900",
		123456:    "₹1,23,456",
		1234567:   "₹12,34,567",
		123456789: "₹12,34,56,789",
		-1500:     "-₹1,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatINR(in), in)
	}
}
