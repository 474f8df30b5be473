package domain

import (
	"github.com/shopspring/decimal"
)

// Currency is one of the payment tokens accepted by the platform. The set is
// closed: any tag outside of it is rejected at the boundary instead of being
// coerced.
type Currency string

const (
	CurrencyUSD1 Currency = "USD1"
	CurrencyUSDC Currency = "USDC"
)

// currencyPrecision maps every accepted currency to the number of decimal
// places of its base unit.
var currencyPrecision = map[Currency]int32{
	CurrencyUSD1: 6,
	CurrencyUSDC: 6,
}

// ParseCurrency returns the currency matching the given tag.
func ParseCurrency(tag string) (Currency, error) {
	ccy := Currency(tag)
	if _, ok := currencyPrecision[ccy]; !ok {
		return "", ErrInvalidCurrency
	}
	return ccy, nil
}

// IsValid returns whether the currency belongs to the accepted set.
func (c Currency) IsValid() bool {
	_, ok := currencyPrecision[c]
	return ok
}

// Precision returns the number of decimal places of the currency's base unit.
func (c Currency) Precision() int32 {
	return currencyPrecision[c]
}

// ToBaseUnits converts an amount expressed in display units to base units
// (amount * 10^precision). The conversion must be exact: amounts with more
// fractional digits than the currency supports are rejected.
func (c Currency) ToBaseUnits(amount decimal.Decimal) (uint64, error) {
	if !c.IsValid() {
		return 0, ErrInvalidCurrency
	}
	if amount.IsNegative() {
		return 0, ErrInvalidPricing
	}
	scaled := amount.Shift(c.Precision())
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrInvalidPricing
	}
	base := scaled.BigInt()
	if !base.IsUint64() {
		return 0, ErrInvalidPricing
	}
	return base.Uint64(), nil
}

// FromBaseUnits converts an amount in base units back to display units.
func (c Currency) FromBaseUnits(amount uint64) decimal.Decimal {
	return decimal.NewFromInt(int64(amount)).Shift(-c.Precision())
}
