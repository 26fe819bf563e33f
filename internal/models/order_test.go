package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	forward := []struct{ from, to OrderStatus }{
		{StatusPending, StatusConfirmed},
		{StatusConfirmed, StatusPreparing},
		{StatusPreparing, StatusOnTheWay},
		{StatusOnTheWay, StatusDelivered},
		{StatusPending, StatusDelivered}, // skipping steps is still forward
	}
	for _, tt := range forward {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	backward := []struct{ from, to OrderStatus }{
		{StatusConfirmed, StatusPending},
		{StatusDelivered, StatusPreparing},
		{StatusOnTheWay, StatusConfirmed},
		{StatusPending, StatusPending},
	}
	for _, tt := range backward {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed), "cancelled is terminal")
	assert.False(t, CanTransition(StatusPending, "paused"), "unknown status")
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusOnTheWay.Terminal())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, method := range PaymentMethods {
		assert.True(t, method.Valid())
	}
	assert.False(t, PaymentMethod("bitcoin").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestProductSizeAndExtraLookup(t *testing.T) {
	product := Product{
		BasePrice: 35000,
		Sizes:     SizeList{{Size: "30cm", PriceModifier: 10000}},
		Extras:    ExtraList{{Name: "Pishloq", Price: 3000}},
	}

	assert.Equal(t, int64(10000), product.SizeModifier("30cm"))
	assert.Equal(t, int64(0), product.SizeModifier("50cm"))
	assert.Equal(t, int64(3000), product.ExtraPrice("Pishloq"))
	assert.Equal(t, int64(0), product.ExtraPrice("Zaytun"))
}
