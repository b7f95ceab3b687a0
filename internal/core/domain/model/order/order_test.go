package order_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("Keizerstraat", 12, "Maastricht", "1000AB", "0612345678")
	require.NoError(t, err)
	return address
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return o
}

func confirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	_, err := o.AddDrink(kernel.NewUUID(), 1)
	require.NoError(t, err)
	require.NoError(t, o.Confirm(testAddress(t)))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending empty order", func(t *testing.T) {
		customerID := kernel.NewUUID()

		o, err := order.NewOrder(kernel.NewUUID(), customerID, time.Now())

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.True(t, o.IsEmpty())
		assert.Nil(t, o.Address())
		assert.Nil(t, o.CourierID())
		assert.Nil(t, o.DeliveryAt())
	})

	t.Run("requires a customer", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, time.Now())

		require.Error(t, err)
	})

	t.Run("requires an identifier", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), time.Now())

		require.Error(t, err)
	})
}

func TestOrder_AddPizza(t *testing.T) {
	t.Run("each call adds a separate pizza", func(t *testing.T) {
		o := pendingOrder(t)
		ingredients := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

		first, err := o.AddPizza(ingredients)
		require.NoError(t, err)
		second, err := o.AddPizza(ingredients)
		require.NoError(t, err)

		assert.Len(t, o.Pizzas(), 2)
		assert.False(t, first.ID().IsEqual(second.ID()))
		assert.True(t, first.HasSameIngredients(second.IngredientIDs()))
	})

	t.Run("collapses duplicate ingredients", func(t *testing.T) {
		o := pendingOrder(t)
		ingredient := kernel.NewUUID()

		line, err := o.AddPizza([]kernel.UUID{ingredient, ingredient, ingredient})

		require.NoError(t, err)
		assert.Len(t, line.IngredientIDs(), 1)
	})

	t.Run("accepts a pizza without ingredients", func(t *testing.T) {
		o := pendingOrder(t)

		line, err := o.AddPizza(nil)

		require.NoError(t, err)
		assert.Empty(t, line.IngredientIDs())
		assert.Len(t, o.Pizzas(), 1)
	})

	t.Run("rejects changes after confirmation", func(t *testing.T) {
		o := confirmedOrder(t)

		_, err := o.AddPizza([]kernel.UUID{kernel.NewUUID()})

		require.ErrorIs(t, err, order.ErrOrderNotPending)
	})
}

func TestOrder_AddDrink(t *testing.T) {
	t.Run("merges repeated drinks into one line", func(t *testing.T) {
		o := pendingOrder(t)
		drinkID := kernel.NewUUID()

		_, err := o.AddDrink(drinkID, 1)
		require.NoError(t, err)
		line, err := o.AddDrink(drinkID, 2)
		require.NoError(t, err)

		assert.Len(t, o.Drinks(), 1)
		assert.Equal(t, 3, line.Quantity())
	})

	t.Run("keeps distinct drinks on distinct lines", func(t *testing.T) {
		o := pendingOrder(t)

		_, err := o.AddDrink(kernel.NewUUID(), 1)
		require.NoError(t, err)
		_, err = o.AddDrink(kernel.NewUUID(), 1)
		require.NoError(t, err)

		assert.Len(t, o.Drinks(), 2)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		o := pendingOrder(t)

		_, err := o.AddDrink(kernel.NewUUID(), 0)

		require.Error(t, err)
	})
}

func TestOrder_AddDessert(t *testing.T) {
	t.Run("merges repeated desserts into one line", func(t *testing.T) {
		o := pendingOrder(t)
		dessertID := kernel.NewUUID()

		_, err := o.AddDessert(dessertID, 2)
		require.NoError(t, err)
		line, err := o.AddDessert(dessertID, 1)
		require.NoError(t, err)

		assert.Len(t, o.Desserts(), 1)
		assert.Equal(t, 3, line.Quantity())
	})
}

func TestOrder_RemoveLine(t *testing.T) {
	t.Run("removes a pizza line outright", func(t *testing.T) {
		o := pendingOrder(t)
		line, err := o.AddPizza([]kernel.UUID{kernel.NewUUID()})
		require.NoError(t, err)

		require.NoError(t, o.RemoveLine(line.ID()))

		assert.Empty(t, o.Pizzas())
	})

	t.Run("decrements a drink line and drops it at zero", func(t *testing.T) {
		o := pendingOrder(t)
		line, err := o.AddDrink(kernel.NewUUID(), 2)
		require.NoError(t, err)

		require.NoError(t, o.RemoveLine(line.ID()))
		assert.Equal(t, 1, line.Quantity())
		assert.Len(t, o.Drinks(), 1)

		require.NoError(t, o.RemoveLine(line.ID()))
		assert.Empty(t, o.Drinks())
	})

	t.Run("reports an unknown line", func(t *testing.T) {
		o := pendingOrder(t)

		err := o.RemoveLine(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrLineNotFound)
	})

	t.Run("rejects changes after confirmation", func(t *testing.T) {
		o := pendingOrder(t)
		line, err := o.AddDrink(kernel.NewUUID(), 1)
		require.NoError(t, err)
		require.NoError(t, o.Confirm(testAddress(t)))

		err = o.RemoveLine(line.ID())

		require.ErrorIs(t, err, order.ErrOrderNotPending)
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("freezes the order with the delivery address", func(t *testing.T) {
		o := pendingOrder(t)
		_, err := o.AddDrink(kernel.NewUUID(), 1)
		require.NoError(t, err)
		address := testAddress(t)

		require.NoError(t, o.Confirm(address))

		assert.Equal(t, order.Confirmed, o.Status())
		require.NotNil(t, o.Address())
		assert.True(t, o.Address().IsEqual(address))
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		o := pendingOrder(t)

		err := o.Confirm(testAddress(t))

		require.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("rejects a missing address", func(t *testing.T) {
		o := pendingOrder(t)
		_, err := o.AddDrink(kernel.NewUUID(), 1)
		require.NoError(t, err)

		err = o.Confirm(kernel.Address{})

		require.ErrorIs(t, err, order.ErrMissingDeliveryInfo)
	})

	t.Run("rejects a second confirmation", func(t *testing.T) {
		o := confirmedOrder(t)

		err := o.Confirm(testAddress(t))

		require.Error(t, err)
	})
}

func TestOrder_Coupon(t *testing.T) {
	t.Run("attaches and detaches before payment", func(t *testing.T) {
		o := confirmedOrder(t)
		couponID := kernel.NewUUID()

		require.NoError(t, o.AttachCoupon(couponID))
		require.NotNil(t, o.CouponID())
		assert.True(t, o.CouponID().IsEqual(couponID))

		require.NoError(t, o.DetachCoupon())
		assert.Nil(t, o.CouponID())
	})

	t.Run("rejects coupon changes after payment", func(t *testing.T) {
		o := confirmedOrder(t)
		require.NoError(t, o.Pay(kernel.NewUUID(), time.Now()))

		require.ErrorIs(t, o.AttachCoupon(kernel.NewUUID()), order.ErrOrderAlreadyPaid)
		require.ErrorIs(t, o.DetachCoupon(), order.ErrOrderAlreadyPaid)
	})
}

func TestOrder_Pay(t *testing.T) {
	t.Run("books the courier and starts the countdown", func(t *testing.T) {
		o := confirmedOrder(t)
		courierID := kernel.NewUUID()
		now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

		require.NoError(t, o.Pay(courierID, now))

		assert.Equal(t, order.Paid, o.Status())
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
		require.NotNil(t, o.DeliveryAt())
		assert.Equal(t, now.Add(order.DeliveryLeadTime), *o.DeliveryAt())
	})

	t.Run("rejects payment before confirmation", func(t *testing.T) {
		o := pendingOrder(t)

		err := o.Pay(kernel.NewUUID(), time.Now())

		require.Error(t, err)
	})

	t.Run("rejects a second payment", func(t *testing.T) {
		o := confirmedOrder(t)
		require.NoError(t, o.Pay(kernel.NewUUID(), time.Now()))

		err := o.Pay(kernel.NewUUID(), time.Now())

		require.Error(t, err)
	})
}

func TestOrder_Delivery(t *testing.T) {
	paidOrder := func(t *testing.T, paidAt time.Time) *order.Order {
		t.Helper()
		o := confirmedOrder(t)
		require.NoError(t, o.Pay(kernel.NewUUID(), paidAt))
		return o
	}

	t.Run("is due once the lead time elapses", func(t *testing.T) {
		paidAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		o := paidOrder(t, paidAt)

		assert.False(t, o.DueForDelivery(paidAt.Add(order.DeliveryLeadTime-time.Second)))
		assert.True(t, o.DueForDelivery(paidAt.Add(order.DeliveryLeadTime)))
		assert.True(t, o.DueForDelivery(paidAt.Add(time.Hour)))
	})

	t.Run("marking delivered is idempotent", func(t *testing.T) {
		o := paidOrder(t, time.Now())

		transitioned, err := o.MarkDelivered()
		require.NoError(t, err)
		assert.True(t, transitioned)
		assert.Equal(t, order.Delivered, o.Status())

		transitioned, err = o.MarkDelivered()
		require.NoError(t, err)
		assert.False(t, transitioned)
	})

	t.Run("cannot complete an unpaid order", func(t *testing.T) {
		o := confirmedOrder(t)

		_, err := o.MarkDelivered()

		require.Error(t, err)
	})

	t.Run("delivered orders are no longer due", func(t *testing.T) {
		o := paidOrder(t, time.Now().Add(-2*time.Hour))
		_, err := o.MarkDelivered()
		require.NoError(t, err)

		assert.False(t, o.DueForDelivery(time.Now()))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("rebuilds a paid order", func(t *testing.T) {
		courierID := kernel.NewUUID()
		deliveryAt := time.Now().Add(order.DeliveryLeadTime)
		address := testAddress(t)
		drink := order.RestoreDrinkLine(kernel.NewUUID(), kernel.NewUUID(), 2)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.Paid,
			time.Now(), &deliveryAt, &address, nil, &courierID,
			nil, []*order.DrinkLine{drink}, nil,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Paid, o.Status())
		assert.Len(t, o.Drinks(), 1)
	})

	t.Run("rejects a paid order without a courier", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.Paid,
			time.Now(), nil, nil, nil, nil,
			nil, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects a pending order with a courier", func(t *testing.T) {
		courierID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.Pending,
			time.Now(), nil, nil, nil, &courierID,
			nil, nil, nil,
		)

		require.Error(t, err)
	})
}
