package http

import "time"

// errorResponse is the uniform error body for all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderResponse struct {
	OrderID string `json:"order_id"`
}

type addPizzaRequest struct {
	IngredientIDs []string `json:"ingredient_ids"`
}

// addItemRequest covers drinks and desserts. Quantity defaults to one.
type addItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (r addItemRequest) quantityOrOne() int {
	if r.Quantity == 0 {
		return 1
	}
	return r.Quantity
}

type confirmOrderRequest struct {
	Street      string `json:"street"`
	HouseNumber int    `json:"house_number"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Phone       string `json:"phone"`
	CouponCode  string `json:"coupon_code"`
}

type refreshCouponsRequest struct {
	BirthDate string `json:"birth_date"`
}

type hireCourierRequest struct {
	Name        string   `json:"name"`
	PostalCodes []string `json:"postal_codes"`
}

type orderHistoryItem struct {
	OrderID    string     `json:"order_id"`
	Status     string     `json:"status"`
	PlacedAt   time.Time  `json:"placed_at"`
	DeliveryAt *time.Time `json:"delivery_at,omitempty"`
}

type trackDeliveryResponse struct {
	OrderID          string    `json:"order_id"`
	Status           string    `json:"status"`
	CourierName      string    `json:"courier_name,omitempty"`
	DeliveryAt       time.Time `json:"delivery_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

type orderTotalResponse struct {
	OrderID         string `json:"order_id"`
	Total           string `json:"total"`
	DiscountPercent int    `json:"discount_percent"`
}

type couponItem struct {
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Redeemed        bool       `json:"redeemed"`
}
