package courier_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("hires an available courier", func(t *testing.T) {
		c, err := courier.NewCourier("Jules")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Jules", c.Name())
		assert.True(t, c.IsAvailable())
		assert.Nil(t, c.UnavailableUntil())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := courier.NewCourier("")

		require.Error(t, err)
	})
}

func TestCourier_Book(t *testing.T) {
	deliveryAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

	t.Run("booking blocks the courier until the delivery is due", func(t *testing.T) {
		c, err := courier.NewCourier("Jules")
		require.NoError(t, err)

		require.NoError(t, c.Book(deliveryAt))

		assert.False(t, c.IsAvailable())
		require.NotNil(t, c.UnavailableUntil())
		assert.Equal(t, deliveryAt, *c.UnavailableUntil())
	})

	t.Run("a booked courier cannot be booked again", func(t *testing.T) {
		c, err := courier.NewCourier("Jules")
		require.NoError(t, err)
		require.NoError(t, c.Book(deliveryAt))

		err = c.Book(deliveryAt.Add(time.Hour))

		require.ErrorIs(t, err, courier.ErrCourierUnavailable)
	})
}

func TestCourier_RefreshAvailability(t *testing.T) {
	deliveryAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	freeAt := deliveryAt

	bookedCourier := func(t *testing.T) *courier.Courier {
		t.Helper()
		c, err := courier.NewCourier("Jules")
		require.NoError(t, err)
		require.NoError(t, c.Book(deliveryAt))
		return c
	}

	t.Run("stays unavailable while the delivery is in flight", func(t *testing.T) {
		c := bookedCourier(t)

		assert.False(t, c.RefreshAvailability(freeAt.Add(-time.Second)))
		assert.False(t, c.IsAvailable())
	})

	t.Run("becomes available once the window elapses", func(t *testing.T) {
		c := bookedCourier(t)

		assert.True(t, c.RefreshAvailability(freeAt))
		assert.True(t, c.IsAvailable())
		assert.Nil(t, c.UnavailableUntil())
	})

	t.Run("repeated sweeps report no change", func(t *testing.T) {
		c := bookedCourier(t)

		assert.True(t, c.RefreshAvailability(freeAt))
		assert.False(t, c.RefreshAvailability(freeAt.Add(time.Minute)))
	})

	t.Run("restored available courier is untouched", func(t *testing.T) {
		c := courier.RestoreCourier(kernel.NewUUID(), "Jules", true, nil)

		assert.False(t, c.RefreshAvailability(freeAt))
		assert.True(t, c.IsAvailable())
	})
}
