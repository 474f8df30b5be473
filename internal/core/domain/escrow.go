package domain

import "time"

// EscrowEntry is the singleton escrow record of an auction: the funds backing
// its standing bid. At most one entry exists per auction, and its amount
// always equals the standing bid's amount.
type EscrowEntry struct {
	AuctionId string
	Bidder    string
	Amount    uint64
	Currency  Currency
	LockedAt  time.Time
}
