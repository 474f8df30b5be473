package domain

const (
	// AuctionStatusActive is the only non-terminal status.
	AuctionStatusActive = iota
	AuctionStatusSettled
	AuctionStatusCancelled
)

const (
	// FeeBasisPointsDenominator is the denominator of the platform fee split.
	FeeBasisPointsDenominator = 10000
	// MaxFeeBasisPoints caps the platform fee at 100%.
	MaxFeeBasisPoints = 10000
)
