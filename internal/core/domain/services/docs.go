// Package services contains stateless domain services that coordinate
// multiple aggregates: pricing an order against the catalog and dispatching
// couriers to paid orders.
package services
