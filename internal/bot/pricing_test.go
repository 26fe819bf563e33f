package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/session"
)

func margarita() *models.Product {
	return &models.Product{
		Name:      "Margarita",
		BasePrice: 35000,
		Sizes: models.SizeList{
			{Size: "25cm", PriceModifier: 0},
			{Size: "30cm", PriceModifier: 10000},
			{Size: "35cm", PriceModifier: 20000},
		},
		Extras: models.ExtraList{
			{Name: "Qo'shimcha pishloq", Price: 5000},
			{Name: "Achchiq sous", Price: 2000},
		},
	}
}

func TestLinePriceBase(t *testing.T) {
	draft := &session.ProductDraft{Quantity: 1}
	assert.Equal(t, int64(35000), LinePrice(margarita(), draft))
}

func TestLinePriceSizeModifier(t *testing.T) {
	product := margarita()

	for _, size := range product.Sizes {
		draft := &session.ProductDraft{Quantity: 1, Size: size.Size}
		assert.Equal(t, product.BasePrice+size.PriceModifier, LinePrice(product, draft),
			"size %s must shift the price by exactly its modifier", size.Size)
	}
}

func TestLinePriceSizelessProduct(t *testing.T) {
	lagmon := &models.Product{Name: "Lag'mon", BasePrice: 30000}
	draft := &session.ProductDraft{Quantity: 1, Size: "30cm"}
	assert.Equal(t, int64(30000), LinePrice(lagmon, draft),
		"a size unknown to the product contributes nothing")
}

// One Margarita at 30cm with extra cheese, quantity 2:
// (35000 + 10000 + 5000) * 2 = 100000.
func TestLinePriceFullConfiguration(t *testing.T) {
	draft := &session.ProductDraft{
		Quantity: 2,
		Size:     "30cm",
		Extras:   []string{"Qo'shimcha pishloq"},
	}
	assert.Equal(t, int64(100000), LinePrice(margarita(), draft))
}

func TestOrderTotal(t *testing.T) {
	assert.Equal(t, int64(110000), OrderTotal(100000, 10000))
	assert.Equal(t, int64(10000), OrderTotal(0, 10000))
}
