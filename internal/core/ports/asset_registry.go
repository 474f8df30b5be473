package ports

import "context"

// AssetRegistry is the registry of tokenized assets the engine operates on.
// The engine consumes these capabilities and never reimplements them; it is
// responsible for verifying ownership and lock-status preconditions before
// invoking them, since the registry trusts its caller's authorization
// decisions. Every failure is a typed error, never a silent no-op.
type AssetRegistry interface {
	// OwnerOf returns the current owner of the asset.
	OwnerOf(ctx context.Context, assetRef string) (string, error)
	// Lock makes the asset non-transferable by its owner for the lifetime of
	// the given auction.
	Lock(ctx context.Context, assetRef, auctionId string) error
	// Unlock releases the transfer-lock without changing ownership.
	Unlock(ctx context.Context, assetRef string) error
	// Transfer assigns the asset to a new owner and releases the
	// transfer-lock.
	Transfer(ctx context.Context, assetRef, newOwner string) error
}
