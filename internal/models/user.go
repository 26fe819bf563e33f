package models

// User represents a registered Telegram customer.
type User struct {
	BaseModel
	TelegramID           int64     `gorm:"uniqueIndex" json:"telegram_id"`
	Phone                string    `json:"phone"`
	Name                 string    `json:"name"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	Addresses            []Address `json:"addresses,omitempty"`
	Orders               []Order   `json:"orders,omitempty"`
}

// Address is a saved delivery location belonging to a user.
type Address struct {
	BaseModel
	UserID    uint     `gorm:"index" json:"user_id"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	IsDefault bool     `json:"is_default"`
	Label     string   `json:"label,omitempty"`
}
