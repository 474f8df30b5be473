package application

import "github.com/rwamarket/auctiond/internal/core/domain"

// PlatformConfig is the platform-wide policy read at auction creation time.
// Fee and increment are captured per auction, so changing them never alters
// in-flight auctions.
type PlatformConfig struct {
	// Treasury is the identity receiving the platform fee on settlements.
	Treasury string
	// EscrowAccount is the identity holding bidders' funds while their bid
	// stands.
	EscrowAccount string
	// FeeBasisPoints is the platform fee applied to winning bids.
	FeeBasisPoints uint32
	// MinBidIncrement is the minimum amount, in base units, a bid must exceed
	// the standing one by. Zero still requires strictly increasing bids.
	MinBidIncrement uint64
	// Currencies is the accepted payment token set.
	Currencies []domain.Currency
}

// Validate returns the first configuration error found.
func (c PlatformConfig) Validate() error {
	if c.Treasury == "" {
		return ErrMissingTreasury
	}
	if c.EscrowAccount == "" {
		return ErrMissingEscrowAccount
	}
	if c.FeeBasisPoints > domain.MaxFeeBasisPoints {
		return domain.ErrInvalidFeeBasisPoints
	}
	if len(c.Currencies) == 0 {
		return ErrMissingCurrencies
	}
	for _, ccy := range c.Currencies {
		if !ccy.IsValid() {
			return domain.ErrInvalidCurrency
		}
	}
	return nil
}

// AcceptsCurrency returns whether the given currency is accepted by the
// platform.
func (c PlatformConfig) AcceptsCurrency(ccy domain.Currency) bool {
	for _, accepted := range c.Currencies {
		if ccy == accepted {
			return true
		}
	}
	return false
}
