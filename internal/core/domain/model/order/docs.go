// Package order implements the Order aggregate of the order-fulfillment core.
//
// An Order is the aggregate root that tracks one customer order through its
// lifecycle (Pending -> Confirmed -> Paid -> Delivered). It owns its line
// items: custom pizzas built from catalog ingredients, and quantity-bearing
// drink and dessert lines. All referenced entities (customer, catalog items,
// coupon, courier) are held by identity only; traversal happens through the
// persistence layer.
package order
