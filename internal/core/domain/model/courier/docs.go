// Package courier implements the Courier aggregate of the delivery pool.
// Couriers serve the postal codes they are linked to and carry one delivery
// at a time, staying unavailable until the delivery is due.
package courier
