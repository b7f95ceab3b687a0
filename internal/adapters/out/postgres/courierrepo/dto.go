// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence, including the postal-code links that make up
// each delivery pool.
package courierrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting couriers.
type CourierDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"type:varchar(255);not null"`
	IsAvailable      bool       `gorm:"not null"`
	UnavailableUntil *time.Time `gorm:"index"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// PostalAssignmentDTO links a courier to a postal code it serves. The
// composite primary key makes re-linking the same pair a no-op upsert.
type PostalAssignmentDTO struct {
	CourierID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostalCode string    `gorm:"type:varchar(16);primaryKey;index"`
}

// TableName specifies the database table name for postal assignments.
func (PostalAssignmentDTO) TableName() string {
	return "postal_assignments"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:               aggregate.ID().Bytes(),
		Name:             aggregate.Name(),
		IsAvailable:      aggregate.IsAvailable(),
		UnavailableUntil: aggregate.UnavailableUntil(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.IsAvailable, dto.UnavailableUntil), nil
}
