package ports

import (
	"context"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

// PaymentService moves fixed-decimal amounts of the accepted payment tokens
// between identities, the engine's escrow account included. Amounts are
// expressed in base units (display amount * 10^decimals), so every transfer is
// exact.
type PaymentService interface {
	// BalanceOf returns the balance of an identity in base units.
	BalanceOf(
		ctx context.Context, identity string, currency domain.Currency,
	) (uint64, error)
	// Transfer moves the given amount between two identities. It fails with a
	// typed error if the sender cannot back the amount.
	Transfer(
		ctx context.Context,
		from, to string, amount uint64, currency domain.Currency,
	) error
}
