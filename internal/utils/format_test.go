package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 so'm"},
		{500, "500 so'm"},
		{35000, "35,000 so'm"},
		{110000, "110,000 so'm"},
		{1234567, "1,234,567 so'm"},
		{-10000, "-10,000 so'm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount))
	}
}
