package domain

import (
	"math/bits"
	"time"

	"github.com/google/uuid"
)

// Bid is the standing high bid of an auction. Its amount always matches the
// funds locked in escrow on the bidder's behalf.
type Bid struct {
	Bidder string
	Amount uint64
}

// Auction is the data structure representing the lifecycle of the sale of a
// single tokenized asset. Status moves from Active to either Settled or
// Cancelled, both terminal.
type Auction struct {
	Id            string
	AssetRef      string
	Seller        string
	StartingPrice uint64
	ReservePrice  uint64
	Currency      Currency
	EndTime       time.Time
	Status        int
	CurrentBid    *Bid
	// FeeBasisPoints is captured from the platform configuration at creation
	// time. Later global fee changes never alter in-flight auctions.
	FeeBasisPoints uint32
	// BidCount counts every accepted bid over the auction's history. It drives
	// the cancellation guard, which looks at history rather than at the
	// standing bid only.
	BidCount  uint32
	CreatedAt time.Time
}

// SettlementOutcome describes every fund and asset movement of a settlement.
// Exactly one of the two outcomes occurs: a sale (asset to winner, split
// payment) or a return (asset back to seller, standing bid refunded if any).
type SettlementOutcome struct {
	Sold           bool
	Winner         string
	Price          uint64
	Fee            uint64
	SellerProceeds uint64
	Refund         *Bid
}

// NewAuction returns an Active auction with a new id after validating pricing,
// currency and end time. The asset itself is locked by the caller, not here.
func NewAuction(
	assetRef, seller string, startingPrice, reservePrice uint64,
	currency Currency, endTime, now time.Time, feeBasisPoints uint32,
) (*Auction, error) {
	if reservePrice < startingPrice {
		return nil, ErrInvalidPricing
	}
	if !currency.IsValid() {
		return nil, ErrInvalidCurrency
	}
	if !endTime.After(now) {
		return nil, ErrInvalidEndTime
	}
	if feeBasisPoints > MaxFeeBasisPoints {
		return nil, ErrInvalidFeeBasisPoints
	}

	return &Auction{
		Id:             uuid.New().String(),
		AssetRef:       assetRef,
		Seller:         seller,
		StartingPrice:  startingPrice,
		ReservePrice:   reservePrice,
		Currency:       currency,
		EndTime:        endTime,
		Status:         AuctionStatusActive,
		FeeBasisPoints: feeBasisPoints,
		CreatedAt:      now,
	}, nil
}

// MinNextBid returns the lowest acceptable amount for the next bid: the
// starting price for the first bid, otherwise the current bid plus the minimum
// increment. A zero increment still requires strictly increasing amounts.
func (a *Auction) MinNextBid(minIncrement uint64) uint64 {
	if a.CurrentBid == nil {
		return a.StartingPrice
	}
	if minIncrement == 0 {
		minIncrement = 1
	}
	min := a.CurrentBid.Amount + minIncrement
	if min < a.StartingPrice {
		min = a.StartingPrice
	}
	return min
}

// PlaceBid records a new standing bid after validating the auction state and
// the amount. It returns the superseded bid, if any, whose escrowed funds must
// be released back to its bidder within the same atomic operation.
func (a *Auction) PlaceBid(
	bidder string, amount, minIncrement uint64, now time.Time,
) (*Bid, error) {
	if !a.IsActive() || !now.Before(a.EndTime) {
		return nil, ErrAuctionNotActive
	}
	if amount == 0 || amount < a.MinNextBid(minIncrement) {
		return nil, ErrBidTooLow
	}

	previous := a.CurrentBid
	a.CurrentBid = &Bid{Bidder: bidder, Amount: amount}
	a.BidCount++
	return previous, nil
}

// Settle brings the auction to the Settled status once the end time has
// passed, and returns the outcome to be executed: either the sale of the asset
// to the winner with the fee split, or the return of the asset to the seller
// with a full refund of the standing bid.
func (a *Auction) Settle(now time.Time) (*SettlementOutcome, error) {
	if !a.IsActive() {
		return nil, ErrAuctionNotActive
	}
	if now.Before(a.EndTime) {
		return nil, ErrNotYetEnded
	}

	a.Status = AuctionStatusSettled

	if a.CurrentBid != nil && a.CurrentBid.Amount >= a.ReservePrice {
		fee := FeeAmount(a.CurrentBid.Amount, a.FeeBasisPoints)
		return &SettlementOutcome{
			Sold:           true,
			Winner:         a.CurrentBid.Bidder,
			Price:          a.CurrentBid.Amount,
			Fee:            fee,
			SellerProceeds: a.CurrentBid.Amount - fee,
		}, nil
	}

	return &SettlementOutcome{Refund: a.CurrentBid}, nil
}

// Cancel brings the auction to the Cancelled status. Only the seller can
// cancel, and only while the auction is active and has never received a bid.
func (a *Auction) Cancel(caller string) error {
	if caller != a.Seller {
		return ErrNotSeller
	}
	if a.BidCount > 0 {
		return ErrAuctionHasBids
	}
	if !a.IsActive() {
		return ErrAuctionNotActive
	}

	a.Status = AuctionStatusCancelled
	return nil
}

// IsActive returns whether the auction is in Active status.
func (a *Auction) IsActive() bool {
	return a.Status == AuctionStatusActive
}

// IsSettled returns whether the auction is in Settled status.
func (a *Auction) IsSettled() bool {
	return a.Status == AuctionStatusSettled
}

// IsCancelled returns whether the auction is in Cancelled status.
func (a *Auction) IsCancelled() bool {
	return a.Status == AuctionStatusCancelled
}

// IsExpired returns whether the auction's end time has passed.
func (a *Auction) IsExpired(now time.Time) bool {
	return !now.Before(a.EndTime)
}

// FeeAmount returns the platform fee for the given amount. The division
// truncates, so the rounding remainder stays with the seller. The product is
// computed on 128 bits so the split stays exact for any representable amount.
func FeeAmount(amount uint64, basisPoints uint32) uint64 {
	// the quotient fits in 64 bits because basisPoints never exceeds the
	// denominator
	hi, lo := bits.Mul64(amount, uint64(basisPoints))
	fee, _ := bits.Div64(hi, lo, FeeBasisPointsDenominator)
	return fee
}
