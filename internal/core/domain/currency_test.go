package domain_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"USD1", "USDC"} {
		currency, err := domain.ParseCurrency(tag)
		require.NoError(t, err)
		require.True(t, currency.IsValid())
		require.Equal(t, int32(6), currency.Precision())
	}

	for _, tag := range []string{"", "EUR", "DOGE", "usdc"} {
		_, err := domain.ParseCurrency(tag)
		require.EqualError(t, err, domain.ErrInvalidCurrency.Error())
	}
}

func TestToBaseUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   string
		expected uint64
	}{
		{"0", 0},
		{"1", 1000000},
		{"12.345678", 12345678},
		{"0.000001", 1},
		{"200", 200000000},
		// the largest representable amount converts exactly
		{"18446744073709.551615", math.MaxUint64},
	}

	for _, tt := range tests {
		amount, err := domain.CurrencyUSDC.ToBaseUnits(
			decimal.RequireFromString(tt.amount),
		)
		require.NoError(t, err)
		require.Equal(t, tt.expected, amount)
	}
}

func TestFailingToBaseUnits(t *testing.T) {
	t.Parallel()

	t.Run("too_many_fractional_digits", func(t *testing.T) {
		t.Parallel()

		_, err := domain.CurrencyUSDC.ToBaseUnits(
			decimal.RequireFromString("0.0000001"),
		)
		require.EqualError(t, err, domain.ErrInvalidPricing.Error())
	})

	t.Run("negative_amount", func(t *testing.T) {
		t.Parallel()

		_, err := domain.CurrencyUSDC.ToBaseUnits(decimal.RequireFromString("-1"))
		require.EqualError(t, err, domain.ErrInvalidPricing.Error())
	})

	t.Run("unknown_currency", func(t *testing.T) {
		t.Parallel()

		_, err := domain.Currency("DOGE").ToBaseUnits(decimal.RequireFromString("1"))
		require.EqualError(t, err, domain.ErrInvalidCurrency.Error())
	})

	t.Run("amount_beyond_uint64_range", func(t *testing.T) {
		t.Parallel()

		// scaled values that do not fit in 64 bits are rejected, never wrapped
		for _, amount := range []string{
			"20000000000000",
			"18446744073709.551616",
			"99999999999999999999",
		} {
			_, err := domain.CurrencyUSDC.ToBaseUnits(
				decimal.RequireFromString(amount),
			)
			require.EqualError(t, err, domain.ErrInvalidPricing.Error())
		}
	})
}

func TestFromBaseUnits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "12.345678", domain.CurrencyUSDC.FromBaseUnits(12345678).String())
	require.Equal(t, "0.000001", domain.CurrencyUSD1.FromBaseUnits(1).String())
	require.Equal(t, "0", domain.CurrencyUSDC.FromBaseUnits(0).String())
	require.Equal(t, "200", domain.CurrencyUSDC.FromBaseUnits(200000000).String())
}
