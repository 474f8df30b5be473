package domain

import "context"

// AuctionRepository is the abstraction for any kind of database intended to
// persist Auctions. All mutation goes through UpdateAuction so that
// implementations can guarantee transactional semantics.
type AuctionRepository interface {
	// AddAuction persists a new auction.
	AddAuction(ctx context.Context, auction *Auction) error
	// GetAuction returns the auction with the given id, or ErrAuctionNotFound.
	GetAuction(ctx context.Context, id string) (*Auction, error)
	// GetActiveAuctionForAsset returns the active auction holding the given
	// asset, or nil if the asset is not under auction.
	GetActiveAuctionForAsset(ctx context.Context, assetRef string) (*Auction, error)
	// GetAllAuctions returns every stored auction.
	GetAllAuctions(ctx context.Context) ([]Auction, error)
	// UpdateAuction commits multiple changes to the same auction in a
	// transactional way.
	UpdateAuction(
		ctx context.Context, id string,
		updateFn func(a *Auction) (*Auction, error),
	) error
}
