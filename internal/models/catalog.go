package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Category groups products on the menu.
type Category struct {
	BaseModel
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Position int       `json:"position"`
	Products []Product `json:"products,omitempty"`
}

// ProductSize is a selectable size with a price modifier on top of the base price.
type ProductSize struct {
	Size          string `json:"size"`
	PriceModifier int64  `json:"price_modifier"`
}

// ProductExtra is an optional paid addition to a product.
type ProductExtra struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// SizeList is stored as a serialized JSON column.
type SizeList []ProductSize

// ExtraList is stored as a serialized JSON column.
type ExtraList []ProductExtra

// Product is a menu item. Prices are integer so'm.
type Product struct {
	BaseModel
	CategoryID  uint      `gorm:"index" json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   int64     `json:"base_price"`
	Image       string    `json:"image,omitempty"`
	Available   bool      `gorm:"default:true" json:"available"`
	Sizes       SizeList  `gorm:"type:text" json:"sizes,omitempty"`
	Extras      ExtraList `gorm:"type:text" json:"extras,omitempty"`
}

// SizeModifier returns the price modifier for the named size, zero when
// the product has no such size.
func (p *Product) SizeModifier(size string) int64 {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.PriceModifier
		}
	}
	return 0
}

// ExtraPrice returns the price of the named extra, zero when absent.
func (p *Product) ExtraPrice(name string) int64 {
	for _, e := range p.Extras {
		if e.Name == name {
			return e.Price
		}
	}
	return 0
}

func (l SizeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *SizeList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l ExtraList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ExtraList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
