package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{100, "100"},
		{0, "0"},
		{99.5, "99.50"},
		{49.99, "49.99"},
		{250.0, "250"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}
