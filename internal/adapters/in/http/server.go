// Package http exposes the ordering API over Echo. Customer identity
// comes from the X-Customer-ID header on order-scoped routes; there is no
// authentication layer, the gateway in front of this service owns that.
package http

import (
	"errors"
	"net/http"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const customerHeader = "X-Customer-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreatePendingOrderCommandHandler
	addPizzaHandler       commands.AddPizzaCommandHandler
	addDrinkHandler       commands.AddDrinkCommandHandler
	addDessertHandler     commands.AddDessertCommandHandler
	removeLineHandler     commands.RemoveLineCommandHandler
	confirmOrderHandler   commands.ConfirmOrderCommandHandler
	payOrderHandler       commands.PayOrderCommandHandler
	deleteOrderHandler    commands.DeleteOrderCommandHandler
	refreshCouponsHandler commands.RefreshEarnedCouponsCommandHandler
	hireCourierHandler    commands.HireCourierCommandHandler

	// Query handlers
	orderHistoryHandler  queries.GetOrderHistoryQueryHandler
	trackDeliveryHandler queries.TrackDeliveryQueryHandler
	getCouponsHandler    queries.GetCouponsQueryHandler
	orderTotalHandler    queries.GetOrderTotalQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreatePendingOrderCommandHandler,
	addPizzaHandler commands.AddPizzaCommandHandler,
	addDrinkHandler commands.AddDrinkCommandHandler,
	addDessertHandler commands.AddDessertCommandHandler,
	removeLineHandler commands.RemoveLineCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	refreshCouponsHandler commands.RefreshEarnedCouponsCommandHandler,
	hireCourierHandler commands.HireCourierCommandHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	trackDeliveryHandler queries.TrackDeliveryQueryHandler,
	getCouponsHandler queries.GetCouponsQueryHandler,
	orderTotalHandler queries.GetOrderTotalQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		addPizzaHandler:       addPizzaHandler,
		addDrinkHandler:       addDrinkHandler,
		addDessertHandler:     addDessertHandler,
		removeLineHandler:     removeLineHandler,
		confirmOrderHandler:   confirmOrderHandler,
		payOrderHandler:       payOrderHandler,
		deleteOrderHandler:    deleteOrderHandler,
		refreshCouponsHandler: refreshCouponsHandler,
		hireCourierHandler:    hireCourierHandler,
		orderHistoryHandler:   orderHistoryHandler,
		trackDeliveryHandler:  trackDeliveryHandler,
		getCouponsHandler:     getCouponsHandler,
		orderTotalHandler:     orderTotalHandler,
	}
}

// RegisterRoutes wires the API surface onto the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, registry *prometheus.Registry) {
	api := e.Group("/api/v1")

	api.POST("/customers/:customerId/orders", s.CreateOrGetPendingOrder)
	api.GET("/customers/:customerId/orders", s.ListOrderHistory)
	api.GET("/customers/:customerId/coupons", s.ListCoupons)
	api.POST("/customers/:customerId/coupons/refresh", s.RefreshCoupons)

	api.POST("/orders/:orderId/pizzas", s.AddPizza)
	api.POST("/orders/:orderId/drinks", s.AddDrink)
	api.POST("/orders/:orderId/desserts", s.AddDessert)
	api.DELETE("/orders/:orderId/lines/:lineId", s.RemoveLine)
	api.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	api.POST("/orders/:orderId/pay", s.PayOrder)
	api.DELETE("/orders/:orderId", s.DeleteOrder)
	api.GET("/orders/:orderId/delivery", s.TrackDelivery)
	api.GET("/orders/:orderId/total", s.GetOrderTotal)

	api.POST("/couriers", s.HireCourier)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if registry != nil {
		e.GET("/metrics", echo.WrapHandler(
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		))
	}
}

// CreateOrGetPendingOrder handles POST /api/v1/customers/:customerId/orders.
// Creating is idempotent per customer: when a pending order already exists
// its ID is returned instead of a conflict.
func (s *Server) CreateOrGetPendingOrder(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreatePendingOrderCommand(orderID, customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err == nil {
		return ctx.JSON(http.StatusCreated, orderResponse{OrderID: orderID.String()})
	}
	if !errors.Is(err, commands.ErrPendingOrderExists) {
		return respondError(ctx, err)
	}

	existing, err := s.findPendingOrder(ctx, customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse{OrderID: existing})
}

// AddPizza handles POST /api/v1/orders/:orderId/pizzas.
func (s *Server) AddPizza(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req addPizzaRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	ingredientIDs := make([]kernel.UUID, 0, len(req.IngredientIDs))
	for _, raw := range req.IngredientIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid ingredient id: "+raw)
		}
		ingredientIDs = append(ingredientIDs, id)
	}

	cmd, err := commands.NewAddPizzaCommand(orderID, customerID, ingredientIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addPizzaHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddDrink handles POST /api/v1/orders/:orderId/drinks. Adding a drink
// already on the order increments its quantity.
func (s *Server) AddDrink(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req addItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	drinkID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return badRequest(ctx, "invalid drink id")
	}

	cmd, err := commands.NewAddDrinkCommand(orderID, customerID, drinkID, req.quantityOrOne())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addDrinkHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddDessert handles POST /api/v1/orders/:orderId/desserts.
func (s *Server) AddDessert(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req addItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	dessertID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return badRequest(ctx, "invalid dessert id")
	}

	cmd, err := commands.NewAddDessertCommand(orderID, customerID, dessertID, req.quantityOrOne())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addDessertHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveLine handles DELETE /api/v1/orders/:orderId/lines/:lineId.
// Removing a drink or dessert line decrements its quantity; the line goes
// away when the quantity reaches zero.
func (s *Server) RemoveLine(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "invalid line id")
	}

	cmd, err := commands.NewRemoveLineCommand(orderID, customerID, lineID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removeLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /api/v1/orders/:orderId/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req confirmOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	address, err := kernel.NewAddress(req.Street, req.HouseNumber, req.City, req.PostalCode, req.Phone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, customerID, address, req.CouponCode)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PayOrder handles POST /api/v1/orders/:orderId/pay.
func (s *Server) PayOrder(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewPayOrderCommand(orderID, customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.payOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderId.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListOrderHistory handles GET /api/v1/customers/:customerId/orders.
func (s *Server) ListOrderHistory(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	query, err := queries.NewGetOrderHistoryQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	history, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]orderHistoryItem, len(history))
	for i, item := range history {
		response[i] = orderHistoryItem{
			OrderID:    item.ID.String(),
			Status:     item.Status,
			PlacedAt:   item.PlacedAt,
			DeliveryAt: item.DeliveryAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TrackDelivery handles GET /api/v1/orders/:orderId/delivery.
func (s *Server) TrackDelivery(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewTrackDeliveryQuery(orderID, customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tracking, err := s.trackDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackDeliveryResponse{
		OrderID:          tracking.OrderID.String(),
		Status:           tracking.Status,
		CourierName:      tracking.CourierName,
		DeliveryAt:       tracking.DeliveryAt,
		RemainingSeconds: tracking.RemainingSeconds,
	})
}

// GetOrderTotal handles GET /api/v1/orders/:orderId/total.
func (s *Server) GetOrderTotal(ctx echo.Context) error {
	orderID, customerID, err := orderScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderTotalQuery(orderID, customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	total, err := s.orderTotalHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderTotalResponse{
		OrderID:         total.OrderID.String(),
		Total:           total.Total.String(),
		DiscountPercent: total.DiscountPercent,
	})
}

// ListCoupons handles GET /api/v1/customers/:customerId/coupons.
func (s *Server) ListCoupons(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	query, err := queries.NewGetCouponsQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	wallet, err := s.getCouponsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]couponItem, len(wallet))
	for i, item := range wallet {
		response[i] = couponItem{
			Code:            item.Code,
			DiscountPercent: item.DiscountPercent,
			ExpiresAt:       item.ExpiresAt,
			Redeemed:        item.Redeemed,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RefreshCoupons handles POST /api/v1/customers/:customerId/coupons/refresh.
// Grants any welcome, birthday, or loyalty coupons the customer has earned
// but not yet received. Safe to call repeatedly.
func (s *Server) RefreshCoupons(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	var req refreshCouponsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.BirthDate)
		if parseErr != nil {
			return badRequest(ctx, "invalid birth date, expected YYYY-MM-DD")
		}
		birthDate = &parsed
	}

	cmd, err := commands.NewRefreshEarnedCouponsCommand(customerID, birthDate, time.Now())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.refreshCouponsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HireCourier handles POST /api/v1/couriers.
func (s *Server) HireCourier(ctx echo.Context) error {
	var req hireCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewHireCourierCommand(req.Name, req.PostalCodes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.hireCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func (s *Server) findPendingOrder(ctx echo.Context, customerID kernel.UUID) (string, error) {
	query, err := queries.NewGetOrderHistoryQuery(customerID)
	if err != nil {
		return "", err
	}

	history, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return "", err
	}

	for _, item := range history {
		if item.Status == order.Pending.String() {
			return item.ID.String(), nil
		}
	}

	return "", errs.NewObjectNotFoundError("order", customerID)
}

// orderScope resolves the order ID from the path and the customer ID from
// the X-Customer-ID header.
func orderScope(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid order id")
	}

	customerID, err := kernel.UUIDFromString(ctx.Request().Header.Get(customerHeader))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("missing or invalid " + customerHeader + " header")
	}

	return orderID, customerID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps application errors onto HTTP status codes.
func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusForError(err), errorResponse{
		Code:    statusForError(err),
		Message: err.Error(),
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, coupon.ErrCouponNotFound),
		errors.Is(err, order.ErrLineNotFound):
		return http.StatusNotFound

	case errors.Is(err, commands.ErrPendingOrderExists),
		errors.Is(err, commands.ErrConfirmedOrderExists),
		errors.Is(err, order.ErrOrderAlreadyPaid),
		errors.Is(err, order.ErrOrderNotPending),
		errors.Is(err, coupon.ErrCouponAlreadyRedeemed),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, services.ErrNoAvailableCourier),
		errors.Is(err, queries.ErrDeliveryNotStarted):
		return http.StatusConflict

	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrMissingDeliveryInfo):
		return http.StatusUnprocessableEntity

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest

	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
