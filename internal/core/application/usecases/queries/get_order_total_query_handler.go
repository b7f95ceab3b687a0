package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// GetOrderTotalQueryHandler prices an order from the current catalog.
// Unlike the other query handlers it goes through the aggregate and the
// pricing service rather than raw SQL: the total is a derived value and
// the pricing rules live in exactly one place.
type GetOrderTotalQueryHandler struct {
	orders  ports.OrderRepository
	coupons ports.CouponRepository
	catalog ports.CatalogReader
	pricing *services.PricingService
}

// NewGetOrderTotalQueryHandler creates a handler for order total queries.
func NewGetOrderTotalQueryHandler(
	orders ports.OrderRepository,
	coupons ports.CouponRepository,
	catalog ports.CatalogReader,
) GetOrderTotalQueryHandler {
	return GetOrderTotalQueryHandler{
		orders:  orders,
		coupons: coupons,
		catalog: catalog,
		pricing: services.NewPricingService(),
	}
}

// Handle loads the order, its attached coupon and the catalog prices for
// its items, and computes the discounted total.
func (h GetOrderTotalQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTotalQuery,
) (GetOrderTotalQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTotalQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderTotalQueryResponse{}, err
	}
	if !aggregate.CustomerID().IsEqual(query.CustomerID()) {
		return GetOrderTotalQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var attached *coupon.Coupon
	if couponID := aggregate.CouponID(); couponID != nil {
		attached, err = h.coupons.Get(ctx, *couponID)
		if err != nil {
			return GetOrderTotalQueryResponse{}, err
		}
	}

	prices, err := h.catalog.PricesFor(ctx, aggregate)
	if err != nil {
		return GetOrderTotalQueryResponse{}, err
	}

	total, err := h.pricing.ComputeTotal(aggregate, prices, attached)
	if err != nil {
		return GetOrderTotalQueryResponse{}, err
	}

	response := GetOrderTotalQueryResponse{
		OrderID: aggregate.ID(),
		Total:   total,
	}
	if attached != nil {
		response.DiscountPercent = attached.DiscountPercent()
	}

	return response, nil
}
