package bot

import (
	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/session"
)

// LinePrice computes the cart line price for a draft configuration:
// (base + size modifier + selected extras) × quantity. Sizes and
// extras unknown to the product contribute nothing.
func LinePrice(product *models.Product, draft *session.ProductDraft) int64 {
	price := product.BasePrice
	if draft.Size != "" {
		price += product.SizeModifier(draft.Size)
	}
	for _, name := range draft.Extras {
		price += product.ExtraPrice(name)
	}
	return price * int64(draft.Quantity)
}

// OrderTotal is the cart subtotal plus the flat delivery fee.
func OrderTotal(subtotal, deliveryPrice int64) int64 {
	return subtotal + deliveryPrice
}
