package bot

import (
	"github.com/example/oshxona/internal/models"
)

// User-visible notices. Copy matches the production bot's Uzbek texts.
const (
	msgGenericError = "Xatolik yuz berdi. Qaytadan urinib ko'ring."
	msgRestartStep  = "Iltimos, bu bosqichni qaytadan boshlang."
	msgEmptyCart    = "Savat bo'sh!"
	msgNoProducts   = "Bu kategoriyada mahsulot yo'q"
	msgCartAdded    = "✅ Savatga qo'shildi!"
	msgCartCleared  = "Savat tozalandi"
)

// statusText maps order statuses to their Uzbek display names.
func statusText(status models.OrderStatus) string {
	switch status {
	case models.StatusPending:
		return "Tasdiqlanadi"
	case models.StatusConfirmed:
		return "Tasdiqlandi"
	case models.StatusPreparing:
		return "Tayyorlanmoqda"
	case models.StatusOnTheWay:
		return "Yo'lda"
	case models.StatusDelivered:
		return "Yetkazildi"
	case models.StatusCancelled:
		return "Bekor qilindi"
	default:
		return string(status)
	}
}

func statusEmoji(status models.OrderStatus) string {
	switch status {
	case models.StatusOnTheWay:
		return "🚚"
	case models.StatusDelivered:
		return "✅"
	case models.StatusCancelled:
		return "❌"
	default:
		return "🟡"
	}
}
