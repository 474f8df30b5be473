package domain

import "errors"

var (
	// ErrInvalidPricing is thrown when creating an auction with a reserve price
	// lower than the starting price.
	ErrInvalidPricing = errors.New("reserve price must be equal or greater than starting price")
	// ErrInvalidCurrency is thrown when the payment token is not part of the
	// accepted currency set.
	ErrInvalidCurrency = errors.New("currency is not accepted")
	// ErrInvalidEndTime is thrown when creating an auction that would already be
	// expired.
	ErrInvalidEndTime = errors.New("end time must be in the future")
	// ErrInvalidFeeBasisPoints ...
	ErrInvalidFeeBasisPoints = errors.New("fee basis points must be in range [0, 10000]")
	// ErrNotOwner is thrown when the auction creator does not own the asset.
	ErrNotOwner = errors.New("caller does not own the asset")
	// ErrAssetEncumbered is thrown when the asset is already under another
	// active auction.
	ErrAssetEncumbered = errors.New("asset is already under an active auction")
	// ErrAuctionNotActive is thrown when operating on a settled or cancelled
	// auction, or when bidding after the end time.
	ErrAuctionNotActive = errors.New("auction is not active")
	// ErrNotYetEnded is thrown when settling an auction before its end time.
	ErrNotYetEnded = errors.New("auction has not ended yet")
	// ErrBidTooLow is thrown when a bid does not beat the current one by at
	// least the minimum increment, or does not reach the starting price.
	ErrBidTooLow = errors.New("bid is too low")
	// ErrInsufficientFunds is thrown when the bidder cannot back the bid amount
	// in the auction's currency.
	ErrInsufficientFunds = errors.New("insufficient funds to back the bid")
	// ErrAuctionHasBids is thrown when cancelling an auction that received at
	// least one bid.
	ErrAuctionHasBids = errors.New("auction with bids cannot be cancelled")
	// ErrNotSeller is thrown when the cancellation caller is not the seller.
	ErrNotSeller = errors.New("caller is not the seller")
	// ErrEscrowInconsistency signals a violated escrow invariant, like a double
	// lock or a release without a matching lock. It aborts the whole operation
	// and must be surfaced, never ignored.
	ErrEscrowInconsistency = errors.New("escrow ledger is in an inconsistent state")
	// ErrAuctionNotFound ...
	ErrAuctionNotFound = errors.New("auction not found")
)
