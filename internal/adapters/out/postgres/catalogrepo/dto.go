// Package catalogrepo provides read access to the ingredient, drink and
// dessert catalogs. Catalog rows are reference data seeded at deploy time;
// the order flows only ever read them.
package catalogrepo

import (
	"github.com/google/uuid"
)

// IngredientDTO represents one pizza ingredient in the catalog. Prices are
// stored in cents to keep the column exact.
type IngredientDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PriceCents   int64     `gorm:"not null"`
	IsVegetarian bool      `gorm:"not null"`
	IsVegan      bool      `gorm:"not null"`
}

// TableName specifies the database table name for ingredient entities.
func (IngredientDTO) TableName() string {
	return "ingredients"
}

// DrinkDTO represents one drink in the catalog.
type DrinkDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	PriceCents int64     `gorm:"not null"`
}

// TableName specifies the database table name for drink entities.
func (DrinkDTO) TableName() string {
	return "drinks"
}

// DessertDTO represents one dessert in the catalog.
type DessertDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	PriceCents int64     `gorm:"not null"`
}

// TableName specifies the database table name for dessert entities.
func (DessertDTO) TableName() string {
	return "desserts"
}
