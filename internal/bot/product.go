package bot

import (
	"fmt"
	"strings"

	"github.com/example/oshxona/internal/gateway"
	"github.com/example/oshxona/internal/session"
	"github.com/example/oshxona/internal/utils"
)

func (b *Bot) showProduct(e gateway.Event, s *session.Session, productID uint) {
	product, err := b.store.GetProduct(productID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if product == nil {
		b.ack(e, "Mahsulot topilmadi")
		return
	}

	s.Draft = &session.ProductDraft{ProductID: product.ID, Quantity: 1}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("%s\n💰 %s\n\n", product.Name, utils.FormatPrice(product.BasePrice)))
	msg.WriteString(fmt.Sprintf("📝 Tarkibi:\n%s\n\n", product.Description))

	var kb gateway.Keyboard

	if len(product.Sizes) > 0 {
		msg.WriteString("O'lchamni tanlang:\n")
		var row []gateway.Button
		for _, size := range product.Sizes {
			row = append(row, gateway.Button{
				Label: size.Size,
				Data:  Action{Kind: ActionSize, Value: size.Size}.Data(),
			})
		}
		kb = append(kb, row)
	}

	msg.WriteString("\nMiqdorini tanlang:\n")
	kb = append(kb, gateway.Row(
		gateway.Button{Label: "➖", Data: Action{Kind: ActionDecreaseQty}.Data()},
		gateway.Button{Label: "1", Data: Action{Kind: ActionQtyDisplay}.Data()},
		gateway.Button{Label: "➕", Data: Action{Kind: ActionIncreaseQty}.Data()},
	))

	if len(product.Extras) > 0 {
		msg.WriteString("\nQo'shimchalar:\n")
		for _, extra := range product.Extras {
			msg.WriteString(fmt.Sprintf("• %s (+%s)\n", extra.Name, utils.FormatPrice(extra.Price)))
			kb = append(kb, gateway.Row(gateway.Button{
				Label: "[ ] " + extra.Name,
				Data:  Action{Kind: ActionExtra, Value: extra.Name}.Data(),
			}))
		}
	}

	kb = append(kb, gateway.Row(
		gateway.Button{Label: "✅ Savatga qo'shish", Data: Action{Kind: ActionAddToCart}.Data()},
		gateway.Button{Label: "❌ Bekor qilish", Data: Action{Kind: ActionCategory, ID: product.CategoryID}.Data()},
	))

	b.render(e, msg.String(), kb)
	b.ack(e, "")
	s.State = session.StateViewingProduct
}

func (b *Bot) selectSize(e gateway.Event, s *session.Session, size string) {
	if s.Draft == nil {
		b.restartStep(e, s)
		return
	}
	s.Draft.Size = size
	b.ack(e, "O'lcham tanlandi: "+size)
}

// changeQuantity mutates the draft quantity by delta (-1, 0 or +1) and
// echoes the resulting value. Decreasing at 1 is a no-op.
func (b *Bot) changeQuantity(e gateway.Event, s *session.Session, delta int) {
	if s.Draft == nil {
		b.restartStep(e, s)
		return
	}

	switch {
	case delta > 0:
		s.Draft.Increase()
	case delta < 0:
		s.Draft.Decrease()
	}

	b.ack(e, fmt.Sprintf("Miqdor: %d", s.Draft.Quantity))
}

func (b *Bot) toggleExtra(e gateway.Event, s *session.Session, name string) {
	if s.Draft == nil {
		b.restartStep(e, s)
		return
	}

	if s.Draft.ToggleExtra(name) {
		b.ack(e, "Qo'shildi: "+name)
	} else {
		b.ack(e, "O'chirildi: "+name)
	}
}

func (b *Bot) addToCart(e gateway.Event, s *session.Session) {
	if s.Draft == nil {
		b.restartStep(e, s)
		return
	}

	product, err := b.store.GetProduct(s.Draft.ProductID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if product == nil {
		b.ack(e, msgGenericError)
		return
	}

	item := session.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    s.Draft.Quantity,
		Size:        s.Draft.Size,
		Extras:      s.Draft.Extras,
		Price:       LinePrice(product, s.Draft),
	}
	s.Cart = append(s.Cart, item)
	s.Draft = nil

	b.ack(e, msgCartAdded)
	b.renderCart(e, s)
}

func (b *Bot) showCart(e gateway.Event, s *session.Session) {
	b.renderCart(e, s)
	b.ack(e, "")
}

func (b *Bot) renderCart(e gateway.Event, s *session.Session) {
	if len(s.Cart) == 0 {
		b.render(e,
			"🛒 Sizning savatingiz bo'sh\n\nMahsulot qo'shish uchun menyuga o'ting.",
			gateway.Keyboard{
				gateway.Row(gateway.Button{Label: "🍕 Menyu", Data: Action{Kind: ActionMenu}.Data()}),
				gateway.Row(gateway.Button{Label: "⬅️ Ortga", Data: Action{Kind: ActionMainMenu}.Data()}),
			})
		s.State = session.StateCartView
		return
	}

	var msg strings.Builder
	msg.WriteString("🛒 Sizning savatingiz:\n\n")

	for i, item := range s.Cart {
		msg.WriteString(fmt.Sprintf("%d. %s", i+1, item.ProductName))
		if item.Size != "" {
			msg.WriteString(fmt.Sprintf(" (%s)", item.Size))
		}
		msg.WriteString(fmt.Sprintf(" x%d\n", item.Quantity))
		msg.WriteString(fmt.Sprintf("   %s\n", utils.FormatPrice(item.Price)))
		if len(item.Extras) > 0 {
			msg.WriteString(fmt.Sprintf("   Qo'shimcha: %s\n", strings.Join(item.Extras, ", ")))
		}
		msg.WriteString("\n")
	}

	subtotal := s.CartSubtotal()
	msg.WriteString("━━━━━━━━━━━━━━━━━\n")
	msg.WriteString(fmt.Sprintf("💵 Jami: %s\n", utils.FormatPrice(subtotal)))
	msg.WriteString(fmt.Sprintf("🚚 Yetkazib berish: %s\n", utils.FormatPrice(b.deliveryPrice)))
	msg.WriteString("━━━━━━━━━━━━━━━━━\n")
	msg.WriteString(fmt.Sprintf("✅ UMUMIY: %s", utils.FormatPrice(OrderTotal(subtotal, b.deliveryPrice))))

	b.render(e, msg.String(), gateway.Keyboard{
		gateway.Row(gateway.Button{Label: "📦 Buyurtma berish", Data: Action{Kind: ActionCheckout}.Data()}),
		gateway.Row(
			gateway.Button{Label: "🔙 Menuga qaytish", Data: Action{Kind: ActionMenu}.Data()},
			gateway.Button{Label: "🗑 Savatni tozalash", Data: Action{Kind: ActionClearCart}.Data()},
		),
	})
	s.State = session.StateCartView
}

func (b *Bot) clearCart(e gateway.Event, s *session.Session) {
	s.ClearCart()
	b.ack(e, msgCartCleared)
	b.renderCart(e, s)
}
