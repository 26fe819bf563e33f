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

func (b *Bot) handleStart(e gateway.Event, s *session.Session) {
	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	if user == nil {
		text := fmt.Sprintf(
			"👋 Xush kelibsiz %sga!\n\n"+
				"Bizda eng mazali taomlar va tez yetkazib berish!\n\n"+
				"📱 Ro'yxatdan o'tish uchun telefon raqamingizni yuboring:",
			b.restaurantName,
		)
		if err := b.gw.RequestContact(e.ChatID, text, "📞 Telefon raqamni yuborish"); err != nil {
			log.Printf("[Bot] contact request failed for chat %d: %v", e.ChatID, err)
			return
		}
		s.State = session.StateAwaitingPhone
		return
	}

	b.showMainMenu(e, s, false)
}

func (b *Bot) handleContact(e gateway.Event, s *session.Session) {
	existing, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	if existing == nil {
		user := &models.User{
			TelegramID:           e.UserID,
			Phone:                e.Phone,
			Name:                 displayName(e),
			NotificationsEnabled: true,
		}
		if err := b.store.CreateUser(user); err != nil {
			b.failStorage(e, err)
			return
		}
		b.send(e, fmt.Sprintf("✅ Ro'yxatdan o'tdingiz, %s!", user.Name), nil)
	}

	b.showMainMenu(e, s, false)
}

func (b *Bot) showMainMenu(e gateway.Event, s *session.Session, edit bool) {
	kb := gateway.Keyboard{
		gateway.Row(
			gateway.Button{Label: "🍕 Menyu", Data: Action{Kind: ActionMenu}.Data()},
			gateway.Button{Label: fmt.Sprintf("🛒 Savatim (%d)", len(s.Cart)), Data: Action{Kind: ActionCart}.Data()},
		),
		gateway.Row(
			gateway.Button{Label: "📦 Buyurtmalarim", Data: Action{Kind: ActionOrders}.Data()},
			gateway.Button{Label: "ℹ️ Biz haqimizda", Data: Action{Kind: ActionAbout}.Data()},
		),
		gateway.Row(
			gateway.Button{Label: "⚙️ Sozlamalar", Data: Action{Kind: ActionSettings}.Data()},
		),
	}

	if edit {
		b.render(e, "🏠 Asosiy menyu:", kb)
	} else {
		b.send(e, "🏠 Asosiy menyu:", kb)
	}
	s.State = session.StateMainMenu
}

func (b *Bot) showCategories(e gateway.Event, s *session.Session) {
	categories, err := b.store.ListCategories()
	if err != nil {
		b.failStorage(e, err)
		return
	}

	var kb gateway.Keyboard
	var row []gateway.Button
	for _, cat := range categories {
		row = append(row, gateway.Button{
			Label: fmt.Sprintf("%s %s", cat.Icon, cat.Name),
			Data:  Action{Kind: ActionCategory, ID: cat.ID}.Data(),
		})
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	kb = append(kb, gateway.Row(gateway.Button{Label: "⬅️ Ortga", Data: Action{Kind: ActionMainMenu}.Data()}))

	b.render(e, "Qaysi bo'limdan buyurtma berasiz?", kb)
	b.ack(e, "")
	s.State = session.StateBrowsingCategories
}

func (b *Bot) showCategoryProducts(e gateway.Event, s *session.Session, categoryID uint) {
	category, err := b.store.GetCategory(categoryID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	products, err := b.store.ListProductsByCategory(categoryID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	if category == nil || len(products) == 0 {
		b.ack(e, msgNoProducts)
		return
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("%s %s\n\n", category.Icon, strings.ToUpper(category.Name)))

	var kb gateway.Keyboard
	for i, prod := range products {
		msg.WriteString(fmt.Sprintf("%d. %s\n", i+1, prod.Name))
		msg.WriteString(fmt.Sprintf("   💰 %s\n", utils.FormatPrice(prod.BasePrice)))
		msg.WriteString(fmt.Sprintf("   📝 %s\n\n", prod.Description))
		kb = append(kb, gateway.Row(gateway.Button{
			Label: "➕ " + prod.Name,
			Data:  Action{Kind: ActionProduct, ID: prod.ID}.Data(),
		}))
	}
	kb = append(kb, gateway.Row(
		gateway.Button{Label: "⬅️ Ortga", Data: Action{Kind: ActionMenu}.Data()},
		gateway.Button{Label: "🛒 Savatga o'tish", Data: Action{Kind: ActionCart}.Data()},
	))

	b.render(e, msg.String(), kb)
	b.ack(e, "")
}

func (b *Bot) showOrders(e gateway.Event, s *session.Session) {
	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	orders, err := b.store.ListOrders(user.ID)
	if err != nil {
		b.failStorage(e, err)
		return
	}

	backRow := gateway.Row(gateway.Button{Label: "⬅️ Asosiy menyu", Data: Action{Kind: ActionMainMenu}.Data()})

	if len(orders) == 0 {
		b.render(e, "📦 Sizda hali buyurtmalar yo'q", gateway.Keyboard{backRow})
		b.ack(e, "")
		return
	}

	var active, history []models.Order
	for _, order := range orders {
		if order.Status.Terminal() {
			history = append(history, order)
		} else {
			active = append(active, order)
		}
	}
	if len(history) > 5 {
		history = history[:5]
	}

	var msg strings.Builder
	msg.WriteString("📦 Sizning buyurtmalaringiz:\n\n")

	if len(active) > 0 {
		msg.WriteString("🟢 Faol:\n")
		for _, order := range active {
			msg.WriteString(fmt.Sprintf("#%d - %s %s\n", order.ID, statusEmoji(order.Status), statusText(order.Status)))
			msg.WriteString(fmt.Sprintf("%s\n\n", utils.FormatPrice(order.Total)))
		}
	}

	if len(history) > 0 {
		msg.WriteString("📋 Tarix:\n")
		for _, order := range history {
			msg.WriteString(fmt.Sprintf("#%d - %s %s\n", order.ID, statusEmoji(order.Status), statusText(order.Status)))
			msg.WriteString(fmt.Sprintf("%s\n\n", utils.FormatPrice(order.Total)))
		}
	}

	b.render(e, msg.String(), gateway.Keyboard{backRow})
	b.ack(e, "")
}

func (b *Bot) showAbout(e gateway.Event) {
	text := fmt.Sprintf(
		"ℹ️ %s haqida\n\n"+
			"Biz eng sifatli va mazali taomlarni tayyorlaymiz!\n\n"+
			"🕐 Ish vaqti: 9:00 - 23:00\n"+
			"📞 Telefon: +998 90 123 45 67\n"+
			"📍 Manzil: Toshkent sh, Amir Temur ko'chasi 1\n\n"+
			"Tez yetkazib berish: %s",
		b.restaurantName, b.estimatedTime,
	)
	b.render(e, text, gateway.Keyboard{
		gateway.Row(gateway.Button{Label: "⬅️ Asosiy menyu", Data: Action{Kind: ActionMainMenu}.Data()}),
	})
	b.ack(e, "")
}

func (b *Bot) showSettings(e gateway.Event, s *session.Session) {
	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	b.renderSettings(e, user)
	b.ack(e, "")
}

func (b *Bot) renderSettings(e gateway.Event, user *models.User) {
	notifications := "❌ O'chirilgan"
	toggleLabel := "🔔 Bildirishnomalarni yoqish"
	if user.NotificationsEnabled {
		notifications = "✅ Yoqilgan"
		toggleLabel = "🔕 Bildirishnomalarni o'chirish"
	}

	text := fmt.Sprintf(
		"⚙️ Sozlamalar:\n\n"+
			"👤 Ism: %s\n"+
			"📱 Telefon: %s\n\n"+
			"🔔 Bildirishnomalar: %s",
		user.Name, user.Phone, notifications,
	)

	b.render(e, text, gateway.Keyboard{
		gateway.Row(gateway.Button{Label: toggleLabel, Data: Action{Kind: ActionToggleNotifications}.Data()}),
		gateway.Row(gateway.Button{Label: "⬅️ Asosiy menyu", Data: Action{Kind: ActionMainMenu}.Data()}),
	})
}

func (b *Bot) toggleNotifications(e gateway.Event, s *session.Session) {
	user, err := b.store.GetUserByTelegramID(e.UserID)
	if err != nil {
		b.failStorage(e, err)
		return
	}
	if user == nil {
		b.restartStep(e, s)
		return
	}

	enabled := !user.NotificationsEnabled
	if err := b.store.UpdateUserNotifications(e.UserID, enabled); err != nil {
		b.failStorage(e, err)
		return
	}

	if enabled {
		b.ack(e, "Bildirishnomalar yoqildi")
	} else {
		b.ack(e, "Bildirishnomalar o'chirildi")
	}
	user.NotificationsEnabled = enabled
	b.renderSettings(e, user)
}
