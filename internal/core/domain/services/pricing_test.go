package services_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_ComputeTotal(t *testing.T) {
	pricing := services.NewPricingService()

	dough := kernel.NewUUID()
	cheese := kernel.NewUUID()
	cola := kernel.NewUUID()
	tiramisu := kernel.NewUUID()

	prices := services.StaticPriceSource{
		Ingredients: map[kernel.UUID]kernel.Money{
			dough:  kernel.NewMoneyFromCents(100),
			cheese: kernel.NewMoneyFromCents(50),
		},
		Drinks: map[kernel.UUID]kernel.Money{
			cola: kernel.NewMoneyFromCents(250),
		},
		Desserts: map[kernel.UUID]kernel.Money{
			tiramisu: kernel.NewMoneyFromCents(450),
		},
	}

	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		return o
	}

	t.Run("sums pizzas, drinks, and desserts", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddPizza([]kernel.UUID{dough, cheese})
		require.NoError(t, err)
		_, err = o.AddDrink(cola, 2)
		require.NoError(t, err)

		// 1.00 + 0.50 + 2 x 2.50 = 6.50
		total, err := pricing.ComputeTotal(o, prices, nil)

		require.NoError(t, err)
		assert.Equal(t, "6.50", total.String())
	})

	t.Run("applies the coupon discount to the order total", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddPizza([]kernel.UUID{dough, cheese})
		require.NoError(t, err)
		_, err = o.AddDrink(cola, 2)
		require.NoError(t, err)

		cpn, err := coupon.NewLoyaltyCoupon(o.CustomerID(), 1, time.Now())
		require.NoError(t, err)

		// 6.50 minus 10% = 5.85
		total, err := pricing.ComputeTotal(o, prices, cpn)

		require.NoError(t, err)
		assert.Equal(t, "5.85", total.String())
	})

	t.Run("an empty order totals zero", func(t *testing.T) {
		total, err := pricing.ComputeTotal(newOrder(t), prices, nil)

		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("a pizza without ingredients costs zero", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddPizza(nil)
		require.NoError(t, err)

		total, err := pricing.ComputeTotal(o, prices, nil)

		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("duplicate ingredients are charged once", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddPizza([]kernel.UUID{cheese, cheese})
		require.NoError(t, err)

		total, err := pricing.ComputeTotal(o, prices, nil)

		require.NoError(t, err)
		assert.Equal(t, "0.50", total.String())
	})

	t.Run("dessert quantities multiply", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddDessert(tiramisu, 3)
		require.NoError(t, err)

		total, err := pricing.ComputeTotal(o, prices, nil)

		require.NoError(t, err)
		assert.Equal(t, "13.50", total.String())
	})

	t.Run("recomputation is deterministic", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddPizza([]kernel.UUID{dough, cheese})
		require.NoError(t, err)

		first, err := pricing.ComputeTotal(o, prices, nil)
		require.NoError(t, err)
		second, err := pricing.ComputeTotal(o, prices, nil)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
	})

	t.Run("reports an unknown catalog item", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.AddDrink(kernel.NewUUID(), 1)
		require.NoError(t, err)

		_, err = pricing.ComputeTotal(o, prices, nil)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
