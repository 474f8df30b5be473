package domain

import "context"

// EscrowRepository persists the escrow ledger: per auction, exactly the funds
// backing the standing bid. Lock and Release guarantee exclusive, exactly-once
// transitions; any violation surfaces ErrEscrowInconsistency and must abort
// the enclosing atomic operation.
type EscrowRepository interface {
	// GetEntry returns the escrow entry of an auction, or nil if the auction
	// holds no escrowed funds.
	GetEntry(ctx context.Context, auctionId string) (*EscrowEntry, error)
	// Lock records the funds backing a new standing bid. Locking twice for the
	// same auction without an interleaved Release is an escrow inconsistency.
	Lock(
		ctx context.Context,
		auctionId, bidder string, amount uint64, currency Currency,
	) error
	// Release removes the escrow entry of an auction and returns the released
	// amount. Releasing a missing entry, or one held by a different bidder, is
	// an escrow inconsistency.
	Release(ctx context.Context, auctionId, bidder string) (uint64, error)
}
