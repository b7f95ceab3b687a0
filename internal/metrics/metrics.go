// Package metrics defines the Prometheus counters exposed by the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersPaidTotal returns a Prometheus counter for the number of orders paid
func NewOrdersPaidTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Total number of orders that completed payment",
	})
}

// NewCouponsRedeemedTotal returns a Prometheus counter for the number of coupons redeemed
func NewCouponsRedeemedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coupons_redeemed_total",
		Help: "Total number of coupons redeemed at order confirmation",
	})
}

// NewDeliveriesCompletedTotal returns a Prometheus counter for the number of completed deliveries
func NewDeliveriesCompletedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_completed_total",
		Help: "Total number of deliveries marked completed by the sweep",
	})
}
