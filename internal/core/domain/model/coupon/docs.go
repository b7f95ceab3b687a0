// Package coupon implements the Coupon aggregate: single-use, customer-bound
// discounts earned through sign-up, birthdays, and order loyalty. Coupon
// codes are deterministic per grant so repeated issuance sweeps stay
// idempotent, and redemption is a one-way transition enforced atomically by
// the persistence layer.
package coupon
