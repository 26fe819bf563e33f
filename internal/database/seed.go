package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/example/oshxona/internal/models"
)

// Seed populates the reference menu. It is a no-op whenever the
// category table already has rows, so repeated startups are safe.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Pitsa", Icon: "🍕", Position: 1},
		{Name: "Burgerlar", Icon: "🍔", Position: 2},
		{Name: "Sho'rva", Icon: "🍜", Position: 3},
		{Name: "Salatlar", Icon: "🥗", Position: 4},
		{Name: "Desertlar", Icon: "🍰", Position: 5},
		{Name: "Ichimliklar", Icon: "☕", Position: 6},
	}

	if err := conn.Create(&categories).Error; err != nil {
		return err
	}

	pizzaSizes := models.SizeList{
		{Size: "25cm", PriceModifier: 0},
		{Size: "30cm", PriceModifier: 10000},
		{Size: "35cm", PriceModifier: 20000},
	}

	products := []models.Product{
		{
			CategoryID:  categories[0].ID,
			Name:        "Margarita",
			Description: "Pomidor sousi, mozzarella pishloq, rayhon",
			BasePrice:   35000,
			Available:   true,
			Sizes:       pizzaSizes,
			Extras: models.ExtraList{
				{Name: "Qo'shimcha pishloq", Price: 5000},
				{Name: "Achchiq sous", Price: 2000},
			},
		},
		{
			CategoryID:  categories[0].ID,
			Name:        "Pepperoni",
			Description: "Kolbasa, pomidor sousi, mozzarella",
			BasePrice:   45000,
			Available:   true,
			Sizes:       pizzaSizes,
			Extras: models.ExtraList{
				{Name: "Qo'shimcha kolbasa", Price: 7000},
				{Name: "Achchiq sous", Price: 2000},
			},
		},
		{
			CategoryID:  categories[1].ID,
			Name:        "Klassik burger",
			Description: "Go'sht kotleti, pomidor, salat, sous",
			BasePrice:   25000,
			Available:   true,
			Extras: models.ExtraList{
				{Name: "Qo'shimcha kotlet", Price: 8000},
				{Name: "Pishloq", Price: 3000},
			},
		},
		{
			CategoryID:  categories[2].ID,
			Name:        "Lag'mon",
			Description: "Uy qo'l lag'moni, go'sht, sabzavotlar",
			BasePrice:   30000,
			Available:   true,
		},
		{
			CategoryID:  categories[3].ID,
			Name:        "Sezar salati",
			Description: "Tovuq, salat, sezar sousi, kruton",
			BasePrice:   20000,
			Available:   true,
		},
		{
			CategoryID:  categories[4].ID,
			Name:        "Tiramisu",
			Description: "Italyan deserti, kofeli",
			BasePrice:   18000,
			Available:   true,
		},
		{
			CategoryID:  categories[5].ID,
			Name:        "Kofe Latte",
			Description: "Espresso va sut",
			BasePrice:   12000,
			Available:   true,
		},
	}

	if err := conn.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("[Database] Seeded %d categories and %d products", len(categories), len(products))
	return nil
}
