package kernel_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates a valid address", func(t *testing.T) {
		address, err := kernel.NewAddress("Keizerstraat", 12, "Maastricht", "1000AB", "0612345678")

		require.NoError(t, err)
		require.NoError(t, address.Validate())
		assert.Equal(t, "Keizerstraat", address.Street())
		assert.Equal(t, 12, address.HouseNumber())
		assert.Equal(t, "Maastricht", address.City())
		assert.Equal(t, "1000AB", address.PostalCode())
		assert.Equal(t, "0612345678", address.Phone())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		testCases := []struct {
			name        string
			street      string
			houseNumber int
			city        string
			postalCode  string
			phone       string
		}{
			{"empty street", "", 12, "Maastricht", "1000AB", "0612345678"},
			{"zero house number", "Keizerstraat", 0, "Maastricht", "1000AB", "0612345678"},
			{"negative house number", "Keizerstraat", -3, "Maastricht", "1000AB", "0612345678"},
			{"empty city", "Keizerstraat", 12, "", "1000AB", "0612345678"},
			{"empty postal code", "Keizerstraat", 12, "Maastricht", "", "0612345678"},
			{"empty phone", "Keizerstraat", 12, "Maastricht", "1000AB", ""},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewAddress(tc.street, tc.houseNumber, tc.city, tc.postalCode, tc.phone)
				require.Error(t, err)
			})
		}
	})

	t.Run("aggregates multiple validation errors", func(t *testing.T) {
		_, err := kernel.NewAddress("", 0, "", "", "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAddress_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var address kernel.Address

		require.Error(t, address.Validate())
	})
}

func TestAddress_IsEqual(t *testing.T) {
	first, err := kernel.NewAddress("Keizerstraat", 12, "Maastricht", "1000AB", "0612345678")
	require.NoError(t, err)
	same, err := kernel.NewAddress("Keizerstraat", 12, "Maastricht", "1000AB", "0612345678")
	require.NoError(t, err)
	other, err := kernel.NewAddress("Markt", 1, "Maastricht", "2000CD", "0612345678")
	require.NoError(t, err)

	assert.True(t, first.IsEqual(same))
	assert.False(t, first.IsEqual(other))
}
