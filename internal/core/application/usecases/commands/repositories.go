// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"pizzeria/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CouponRepoFactory provides access to the coupon repository within a transaction.
	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// OrderCouponUoW manages transactions spanning orders and coupons.
	// Used by confirmation (validate and redeem the attached coupon) and
	// by the coupon issuance sweep (count pizzas, grant coupons).
	OrderCouponUoW interface {
		TxManager
		OrderRepoFactory
		CouponRepoFactory
	}

	// OrderCouponUoWFactory creates new order+coupon unit of work instances.
	OrderCouponUoWFactory interface {
		Create() OrderCouponUoW
	}

	// OrderCourierUoW manages transactions spanning orders and couriers.
	// Payment books a courier and transitions the order atomically.
	OrderCourierUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// OrderCourierUoWFactory creates new order+courier unit of work instances.
	OrderCourierUoWFactory interface {
		Create() OrderCourierUoW
	}
)
