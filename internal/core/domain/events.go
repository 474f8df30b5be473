package domain

import "time"

// Event topics published on every committed state transition.
const (
	EventAuctionCreated   = "auction_created"
	EventBidPlaced        = "bid_placed"
	EventBidRefunded      = "bid_refunded"
	EventAuctionSettled   = "auction_settled"
	EventAuctionCancelled = "auction_cancelled"
)

// AuctionEvent is the payload broadcast to subscribers of the live feed.
type AuctionEvent struct {
	Topic     string    `json:"topic"`
	AuctionId string    `json:"auctionId"`
	AssetRef  string    `json:"assetRef"`
	Seller    string    `json:"seller,omitempty"`
	Bidder    string    `json:"bidder,omitempty"`
	Amount    uint64    `json:"amount,omitempty"`
	Fee       uint64    `json:"fee,omitempty"`
	Currency  Currency  `json:"currency,omitempty"`
	Sold      bool      `json:"sold,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
