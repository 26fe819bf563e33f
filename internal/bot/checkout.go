package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/example/oshxona/internal/gateway"
	"github.com/example/oshxona/internal/models"
	"github.com/example/oshxona/internal/session"
	"github.com/example/oshxona/internal/utils"
)

func (b *Bot) startCheckout(e gateway.Event, s *session.Session) {
	if len(s.Cart) == 0 {
		b.ack(e, msgEmptyCart)
		return
	}

	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	addresses, err := b.store.ListAddresses(user.ID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	var kb gateway.Keyboard
	if len(addresses) > 0 {
		kb = append(kb, gateway.Row(gateway.Button{
			Label: "📋 Avvalgi manzillarim",
			Data:  Action{Kind: ActionSavedAddresses}.Data(),
		}))
	}
	kb = append(kb,
		gateway.Row(gateway.Button{Label: "📌 Geolokatsiya yuborish", Data: Action{Kind: ActionSendLocation}.Data()}),
		gateway.Row(gateway.Button{Label: "✍️ Manzilni yozish", Data: Action{Kind: ActionWriteAddress}.Data()}),
		gateway.Row(gateway.Button{Label: "⬅️ Ortga", Data: Action{Kind: ActionCart}.Data()}),
	)

	b.render(e, "📍 Yetkazib berish manzilini yuboring:", kb)
	b.ack(e, "")
	s.State = session.StateEnteringAddress
}

func (b *Bot) showSavedAddresses(e gateway.Event, s *session.Session) {
	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	addresses, err := b.store.ListAddresses(user.ID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	var kb gateway.Keyboard
	for _, addr := range addresses {
		label := addr.Label
		if label == "" {
			label = addr.Address
		}
		if addr.IsDefault {
			label = "⭐ " + label
		}
		kb = append(kb, gateway.Row(gateway.Button{
			Label: label,
			Data:  Action{Kind: ActionUseAddress, ID: addr.ID}.Data(),
		}))
	}
	kb = append(kb, gateway.Row(gateway.Button{Label: "⬅️ Ortga", Data: Action{Kind: ActionCheckout}.Data()}))

	b.render(e, "📋 Saqlangan manzillaringiz:", kb)
	b.ack(e, "")
}

func (b *Bot) useSavedAddress(e gateway.Event, s *session.Session, addressID uint) {
	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	address, err := b.store.GetAddress(addressID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if address == nil || address.UserID != user.ID {
		b.ack(e, "Manzil topilmadi")
		return
	}

	s.AddressDraft = &session.AddressDraft{
		Address:   address.Address,
		Latitude:  address.Latitude,
		Longitude: address.Longitude,
	}

	b.ack(e, "")
	b.confirmAddressPrompt(e, s, Action{Kind: ActionSavedAddresses}, false)
}

func (b *Bot) promptLocation(e gateway.Event, s *session.Session) {
	b.ack(e, "")
	b.send(e, "📎 tugmasi orqali geolokatsiyangizni yuboring.", nil)
	s.State = session.StateEnteringAddress
}

func (b *Bot) promptAddressText(e gateway.Event, s *session.Session) {
	b.ack(e, "")
	b.send(e, "📝 Manzilni yozing (masalan: Toshkent sh, Chilonzor tumani, 12-mavze, 25-uy):", nil)
	s.State = session.StateAwaitingAddressText
}

func (b *Bot) handleText(e gateway.Event, s *session.Session) {
	switch s.State {
	case session.StateAwaitingAddressText:
		s.AddressDraft = &session.AddressDraft{Address: e.Text}
		b.confirmAddressPrompt(e, s, Action{Kind: ActionWriteAddress}, true)
	case session.StateAwaitingInfo:
		s.AdditionalInfo = e.Text
		b.askPaymentMethod(e, s)
	}
}

func (b *Bot) handleLocation(e gateway.Event, s *session.Session) {
	if s.State != session.StateEnteringAddress {
		return
	}

	lat, lng := e.Latitude, e.Longitude
	s.AddressDraft = &session.AddressDraft{
		Address:   fmt.Sprintf("📍 Geolokatsiya: %.5f, %.5f", lat, lng),
		Latitude:  &lat,
		Longitude: &lng,
	}

	b.confirmAddressPrompt(e, s, Action{Kind: ActionCheckout}, false)
}

// confirmAddressPrompt shows the captured address with confirm/change
// buttons. changeAction restarts whichever entry path produced it.
func (b *Bot) confirmAddressPrompt(e gateway.Event, s *session.Session, changeAction Action, offerSave bool) {
	if s.AddressDraft == nil {
		b.restartStep(e, s)
		return
	}

	kb := gateway.Keyboard{
		gateway.Row(
			gateway.Button{Label: "✅ Ha, to'g'ri", Data: Action{Kind: ActionConfirmAddress}.Data()},
			gateway.Button{Label: "✏️ O'zgartirish", Data: changeAction.Data()},
		),
	}
	if offerSave {
		kb = append(kb, gateway.Row(gateway.Button{
			Label: "💾 Saqlab, davom etish",
			Data:  Action{Kind: ActionSaveAddress}.Data(),
		}))
	}

	b.send(e, fmt.Sprintf("Manzil qabul qilindi ✅\n📍 %s\n\nTo'g'rimi?", s.AddressDraft.Address), kb)
}

func (b *Bot) confirmAddress(e gateway.Event, s *session.Session) {
	if s.AddressDraft == nil {
		b.restartStep(e, s)
		return
	}

	b.ack(e, "")
	b.send(e,
		"📝 Qo'shimcha izoh (ixtiyoriy):\n\nMasalan:\n- Podezd/kvartira\n- Eshikni qanday ochish\n- Qo'shimcha yo'riqnoma",
		gateway.Keyboard{
			gateway.Row(gateway.Button{Label: "⏭ O'tkazib yuborish", Data: Action{Kind: ActionSkipInfo}.Data()}),
		})
	s.State = session.StateAwaitingInfo
}

// saveAddress stores the scratch address in the user's address book
// and continues checkout. The first saved address becomes the default.
func (b *Bot) saveAddress(e gateway.Event, s *session.Session) {
	if s.AddressDraft == nil {
		b.restartStep(e, s)
		return
	}

	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	existing, err := b.store.ListAddresses(user.ID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	address := &models.Address{
		UserID:    user.ID,
		Address:   s.AddressDraft.Address,
		Latitude:  s.AddressDraft.Latitude,
		Longitude: s.AddressDraft.Longitude,
		IsDefault: len(existing) == 0,
	}
	if err := b.store.CreateAddress(address); err != nil {
		b.failStorage(e, err)
		return
	}

	b.ack(e, "Manzil saqlandi")
	b.confirmAddress(gateway.Event{Kind: gateway.EventText, ChatID: e.ChatID, UserID: e.UserID}, s)
}

func (b *Bot) askPaymentMethod(e gateway.Event, s *session.Session) {
	b.ack(e, "")
	b.send(e, "💳 To'lov usulini tanlang:", gateway.Keyboard{
		gateway.Row(gateway.Button{Label: "💵 Naqd pul", Data: Action{Kind: ActionPayment, Value: string(models.PaymentCash)}.Data()}),
		gateway.Row(
			gateway.Button{Label: "💳 Payme", Data: Action{Kind: ActionPayment, Value: string(models.PaymentPayme)}.Data()},
			gateway.Button{Label: "💳 Click", Data: Action{Kind: ActionPayment, Value: string(models.PaymentClick)}.Data()},
		),
		gateway.Row(gateway.Button{Label: "💳 Uzum Bank", Data: Action{Kind: ActionPayment, Value: string(models.PaymentUzum)}.Data()}),
		gateway.Row(gateway.Button{Label: "⬅️ Ortga", Data: Action{Kind: ActionCheckout}.Data()}),
	})
	s.State = session.StateSelectingPayment
}

func (b *Bot) placeOrder(e gateway.Event, s *session.Session, methodValue string) {
	method := models.PaymentMethod(methodValue)
	if !method.Valid() {
		b.ack(e, msgGenericError)
		return
	}

	if len(s.Cart) == 0 {
		b.ack(e, msgEmptyCart)
		return
	}
	if s.AddressDraft == nil {
		b.restartStep(e, s)
		return
	}

	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	subtotal := s.CartSubtotal()
	order := &models.Order{
		UserID:         user.ID,
		Status:         models.StatusPending,
		Total:          OrderTotal(subtotal, b.deliveryPrice),
		Address:        s.AddressDraft.Address,
		Latitude:       s.AddressDraft.Latitude,
		Longitude:      s.AddressDraft.Longitude,
		PaymentMethod:  method,
		AdditionalInfo: s.AdditionalInfo,
		EstimatedTime:  b.estimatedTime,
	}
	for _, item := range s.Cart {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Extras:      models.StringList(item.Extras),
			Price:       item.Price,
		})
	}

	if err := b.store.CreateOrder(order); err != nil {
		b.failStorage(e, err)
		return
	}

	s.ClearCart()
	s.ResetCheckout()

	if err := b.scheduler.ConfirmLater(order.ID); err != nil {
		log.Printf("[Bot] failed to schedule confirmation for order %d: %v", order.ID, err)
	}

	b.ack(e, "")
	b.send(e, b.receiptText(order, method), gateway.Keyboard{
		gateway.Row(gateway.Button{Label: "⬅️ Asosiy menyu", Data: Action{Kind: ActionMainMenu}.Data()}),
	})
	s.State = session.StateMainMenu
}

func (b *Bot) receiptText(order *models.Order, method models.PaymentMethod) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString("- " + item.ProductName)
		if item.Size != "" {
			items.WriteString(fmt.Sprintf(" (%s)", item.Size))
		}
		items.WriteString(fmt.Sprintf(" x%d - %s\n", item.Quantity, utils.FormatPrice(item.Price)))
	}

	return fmt.Sprintf(
		"🎉 Buyurtmangiz qabul qilindi!\n\n"+
			"📦 Buyurtma #%d\n\n"+
			"🛒 Mahsulotlar:\n%s\n"+
			"📍 Manzil: %s\n"+
			"💳 To'lov: %s\n"+
			"💰 Jami: %s\n\n"+
			"⏱ Taxminiy vaqt: %s\n\n"+
			"Holat: 🟡 Tayyorlanmoqda...",
		order.ID, items.String(), order.Address, method.Label(),
		utils.FormatPrice(order.Total), order.EstimatedTime,
	)
}
