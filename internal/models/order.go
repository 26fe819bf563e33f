package models

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusOnTheWay:  3,
	StatusDelivered: 4,
}

// Terminal reports whether no further progress is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok || s == StatusCancelled
}

// CanTransition reports whether an order may move from one status to
// another. Progress is strictly forward; cancellation is handled
// separately because its policy is configurable.
func CanTransition(from, to OrderStatus) bool {
	fr, ok := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok && ok2 && tr > fr
}

// PaymentMethod identifies how the customer pays on delivery.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentPayme PaymentMethod = "payme"
	PaymentClick PaymentMethod = "click"
	PaymentUzum  PaymentMethod = "uzum"
)

// PaymentMethods is the fixed set offered at checkout.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentPayme, PaymentClick, PaymentUzum}

// Label returns the display name used on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Naqd"
	case PaymentPayme:
		return "Payme"
	case PaymentClick:
		return "Click"
	case PaymentUzum:
		return "Uzum Bank"
	default:
		return string(m)
	}
}

// Valid reports whether m is one of the offered methods.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Order is a placed order. Address and item fields are snapshots taken
// at creation time and never re-derived from live records.
type Order struct {
	BaseModel
	UserID         uint          `gorm:"index" json:"user_id"`
	User           *User         `json:"user,omitempty"`
	Status         OrderStatus   `json:"status"`
	Total          int64         `json:"total"`
	Address        string        `json:"address"`
	Latitude       *float64      `json:"latitude,omitempty"`
	Longitude      *float64      `json:"longitude,omitempty"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	AdditionalInfo string        `json:"additional_info,omitempty"`
	CourierName    string        `json:"courier_name,omitempty"`
	CourierPhone   string        `json:"courier_phone,omitempty"`
	EstimatedTime  string        `json:"estimated_time,omitempty"`
	Items          []OrderItem   `json:"items,omitempty"`
}

// StringList is stored as a serialized JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// OrderItem is one line of an order. Price already includes the size
// modifier, selected extras and the quantity multiplication.
type OrderItem struct {
	BaseModel
	OrderID     uint       `gorm:"index" json:"order_id"`
	ProductID   uint       `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	Size        string     `json:"size,omitempty"`
	Extras      StringList `gorm:"type:text" json:"extras,omitempty"`
	Price       int64      `json:"price"`
}
