// Package orderrepo provides data transfer objects and mapping functions
// for order persistence, converting between the order aggregate and its
// relational representation.
package orderrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The address columns are empty until the order is confirmed; an empty
// street marks the address as absent.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status     int        `gorm:"not null;index"`
	PlacedAt   time.Time  `gorm:"not null"`
	DeliveryAt *time.Time `gorm:"index"`
	Address    AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	CouponID   *uuid.UUID `gorm:"type:uuid"`
	CourierID  *uuid.UUID `gorm:"type:uuid;index"`

	Pizzas   []PizzaLineDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Drinks   []DrinkLineDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Desserts []DessertLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	Street      string `gorm:"type:varchar(255)"`
	HouseNumber int
	City        string `gorm:"type:varchar(255)"`
	PostalCode  string `gorm:"type:varchar(16);index"`
	Phone       string `gorm:"type:varchar(32)"`
}

// PizzaLineDTO represents one composed pizza on an order.
type PizzaLineDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`

	Ingredients []PizzaIngredientDTO `gorm:"foreignKey:PizzaLineID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for pizza line entities.
func (PizzaLineDTO) TableName() string {
	return "pizza_lines"
}

// PizzaIngredientDTO links a pizza line to one of its ingredients.
type PizzaIngredientDTO struct {
	PizzaLineID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for pizza ingredient links.
func (PizzaIngredientDTO) TableName() string {
	return "pizza_line_ingredients"
}

// DrinkLineDTO represents a drink line with its quantity.
type DrinkLineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DrinkID  uuid.UUID `gorm:"type:uuid;not null"`
	Quantity int       `gorm:"not null"`
}

// TableName specifies the database table name for drink line entities.
func (DrinkLineDTO) TableName() string {
	return "drink_lines"
}

// DessertLineDTO represents a dessert line with its quantity.
type DessertLineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	DessertID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName specifies the database table name for dessert line entities.
func (DessertLineDTO) TableName() string {
	return "dessert_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var address AddressDTO
	if a := aggregate.Address(); a != nil {
		address = AddressDTO{
			Street:      a.Street(),
			HouseNumber: a.HouseNumber(),
			City:        a.City(),
			PostalCode:  a.PostalCode(),
			Phone:       a.Phone(),
		}
	}

	var couponID *uuid.UUID
	if id := aggregate.CouponID(); id != nil {
		raw := id.Bytes()
		couponID = &raw
	}

	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	pizzas := make([]PizzaLineDTO, 0, len(aggregate.Pizzas()))
	for _, p := range aggregate.Pizzas() {
		ingredients := make([]PizzaIngredientDTO, 0, len(p.IngredientIDs()))
		for _, ingredientID := range p.IngredientIDs() {
			ingredients = append(ingredients, PizzaIngredientDTO{
				PizzaLineID:  p.ID().Bytes(),
				IngredientID: ingredientID.Bytes(),
			})
		}

		pizzas = append(pizzas, PizzaLineDTO{
			ID:          p.ID().Bytes(),
			OrderID:     orderID,
			Ingredients: ingredients,
		})
	}

	drinks := make([]DrinkLineDTO, 0, len(aggregate.Drinks()))
	for _, d := range aggregate.Drinks() {
		drinks = append(drinks, DrinkLineDTO{
			ID:       d.ID().Bytes(),
			OrderID:  orderID,
			DrinkID:  d.DrinkID().Bytes(),
			Quantity: d.Quantity(),
		})
	}

	desserts := make([]DessertLineDTO, 0, len(aggregate.Desserts()))
	for _, d := range aggregate.Desserts() {
		desserts = append(desserts, DessertLineDTO{
			ID:        d.ID().Bytes(),
			OrderID:   orderID,
			DessertID: d.DessertID().Bytes(),
			Quantity:  d.Quantity(),
		})
	}

	return OrderDTO{
		ID:         orderID,
		CustomerID: aggregate.CustomerID().Bytes(),
		Status:     int(aggregate.Status()),
		PlacedAt:   aggregate.PlacedAt(),
		DeliveryAt: aggregate.DeliveryAt(),
		Address:    address,
		CouponID:   couponID,
		CourierID:  courierID,
		Pizzas:     pizzas,
		Drinks:     drinks,
		Desserts:   desserts,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var address *kernel.Address
	if dto.Address.Street != "" {
		restored, addrErr := kernel.NewAddress(
			dto.Address.Street,
			dto.Address.HouseNumber,
			dto.Address.City,
			dto.Address.PostalCode,
			dto.Address.Phone,
		)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &restored
	}

	couponID, err := optionalUUID(dto.CouponID)
	if err != nil {
		return nil, err
	}

	courierID, err := optionalUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	pizzas := make([]*order.PizzaLine, 0, len(dto.Pizzas))
	for _, p := range dto.Pizzas {
		lineID, lineErr := kernel.UUIDFromBytes(p.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		ingredientIDs := make([]kernel.UUID, 0, len(p.Ingredients))
		for _, ingredient := range p.Ingredients {
			ingredientID, ingErr := kernel.UUIDFromBytes(ingredient.IngredientID[:])
			if ingErr != nil {
				return nil, ingErr
			}
			ingredientIDs = append(ingredientIDs, ingredientID)
		}

		pizzas = append(pizzas, order.RestorePizzaLine(lineID, ingredientIDs))
	}

	drinks := make([]*order.DrinkLine, 0, len(dto.Drinks))
	for _, d := range dto.Drinks {
		lineID, lineErr := kernel.UUIDFromBytes(d.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		drinkID, drinkErr := kernel.UUIDFromBytes(d.DrinkID[:])
		if drinkErr != nil {
			return nil, drinkErr
		}

		drinks = append(drinks, order.RestoreDrinkLine(lineID, drinkID, d.Quantity))
	}

	desserts := make([]*order.DessertLine, 0, len(dto.Desserts))
	for _, d := range dto.Desserts {
		lineID, lineErr := kernel.UUIDFromBytes(d.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		dessertID, dessertErr := kernel.UUIDFromBytes(d.DessertID[:])
		if dessertErr != nil {
			return nil, dessertErr
		}

		desserts = append(desserts, order.RestoreDessertLine(lineID, dessertID, d.Quantity))
	}

	return order.RestoreOrder(
		id,
		customerID,
		order.Status(dto.Status),
		dto.PlacedAt,
		dto.DeliveryAt,
		address,
		couponID,
		courierID,
		pizzas,
		drinks,
		desserts,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
