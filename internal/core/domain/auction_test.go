package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

var (
	now     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	endTime = now.Add(24 * time.Hour)
)

func newTestAuction(
	t *testing.T, startingPrice, reservePrice uint64, feeBps uint32,
) *domain.Auction {
	t.Helper()

	auction, err := domain.NewAuction(
		"asset-1", "alice", startingPrice, reservePrice,
		domain.CurrencyUSDC, endTime, now, feeBps,
	)
	require.NoError(t, err)
	return auction
}

func TestNewAuction(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)

	require.NotEmpty(t, auction.Id)
	require.True(t, auction.IsActive())
	require.Nil(t, auction.CurrentBid)
	require.Zero(t, auction.BidCount)
	require.Equal(t, uint32(500), auction.FeeBasisPoints)
	require.Equal(t, domain.CurrencyUSDC, auction.Currency)
}

func TestFailingNewAuction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		startingPrice uint64
		reservePrice  uint64
		currency      domain.Currency
		endTime       time.Time
		feeBps        uint32
		expectedError error
	}{
		{
			name:          "reserve_below_starting",
			startingPrice: 150,
			reservePrice:  100,
			currency:      domain.CurrencyUSDC,
			endTime:       endTime,
			expectedError: domain.ErrInvalidPricing,
		},
		{
			name:          "unknown_currency",
			startingPrice: 100,
			reservePrice:  150,
			currency:      domain.Currency("DOGE"),
			endTime:       endTime,
			expectedError: domain.ErrInvalidCurrency,
		},
		{
			name:          "end_time_in_the_past",
			startingPrice: 100,
			reservePrice:  150,
			currency:      domain.CurrencyUSDC,
			endTime:       now.Add(-time.Hour),
			expectedError: domain.ErrInvalidEndTime,
		},
		{
			name:          "end_time_equal_to_now",
			startingPrice: 100,
			reservePrice:  150,
			currency:      domain.CurrencyUSDC,
			endTime:       now,
			expectedError: domain.ErrInvalidEndTime,
		},
		{
			name:          "fee_too_high",
			startingPrice: 100,
			reservePrice:  150,
			currency:      domain.CurrencyUSDC,
			endTime:       endTime,
			feeBps:        10001,
			expectedError: domain.ErrInvalidFeeBasisPoints,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auction, err := domain.NewAuction(
				"asset-1", "alice", tt.startingPrice, tt.reservePrice,
				tt.currency, tt.endTime, now, tt.feeBps,
			)
			require.Nil(t, auction)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestPlaceBid(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)

	previous, err := auction.PlaceBid("bob", 120, 1, now)
	require.NoError(t, err)
	require.Nil(t, previous)
	require.Equal(t, uint64(120), auction.CurrentBid.Amount)
	require.Equal(t, "bob", auction.CurrentBid.Bidder)
	require.Equal(t, uint32(1), auction.BidCount)

	_, err = auction.PlaceBid("carol", 110, 1, now)
	require.EqualError(t, err, domain.ErrBidTooLow.Error())
	require.Equal(t, uint64(120), auction.CurrentBid.Amount)

	previous, err = auction.PlaceBid("carol", 200, 1, now)
	require.NoError(t, err)
	require.NotNil(t, previous)
	require.Equal(t, "bob", previous.Bidder)
	require.Equal(t, uint64(120), previous.Amount)
	require.Equal(t, uint64(200), auction.CurrentBid.Amount)
	require.Equal(t, uint32(2), auction.BidCount)
}

func TestFailingPlaceBid(t *testing.T) {
	t.Parallel()

	t.Run("below_starting_price", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		_, err := auction.PlaceBid("bob", 99, 1, now)
		require.EqualError(t, err, domain.ErrBidTooLow.Error())
		require.Nil(t, auction.CurrentBid)
	})

	t.Run("zero_amount", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 0, 0, 500)
		_, err := auction.PlaceBid("bob", 0, 0, now)
		require.EqualError(t, err, domain.ErrBidTooLow.Error())
	})

	t.Run("after_end_time", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		_, err := auction.PlaceBid("bob", 120, 1, endTime)
		require.EqualError(t, err, domain.ErrAuctionNotActive.Error())
	})

	t.Run("on_settled_auction", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		_, err := auction.Settle(endTime)
		require.NoError(t, err)

		_, err = auction.PlaceBid("bob", 120, 1, now)
		require.EqualError(t, err, domain.ErrAuctionNotActive.Error())
	})
}

func TestMinNextBid(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)
	require.Equal(t, uint64(100), auction.MinNextBid(10))

	_, err := auction.PlaceBid("bob", 100, 10, now)
	require.NoError(t, err)
	require.Equal(t, uint64(110), auction.MinNextBid(10))

	// a zero increment still requires strictly increasing amounts
	require.Equal(t, uint64(101), auction.MinNextBid(0))
	_, err = auction.PlaceBid("carol", 100, 0, now)
	require.EqualError(t, err, domain.ErrBidTooLow.Error())
}

func TestSettleWithReserveMet(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)

	_, err := auction.PlaceBid("bob", 120, 1, now)
	require.NoError(t, err)
	previous, err := auction.PlaceBid("carol", 200, 1, now)
	require.NoError(t, err)
	require.Equal(t, uint64(120), previous.Amount)

	outcome, err := auction.Settle(endTime)
	require.NoError(t, err)
	require.True(t, auction.IsSettled())
	require.True(t, outcome.Sold)
	require.Equal(t, "carol", outcome.Winner)
	require.Equal(t, uint64(200), outcome.Price)
	require.Equal(t, uint64(10), outcome.Fee)
	require.Equal(t, uint64(190), outcome.SellerProceeds)
	require.Nil(t, outcome.Refund)
}

func TestSettleWithReserveNotMet(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 50, 500, 500)

	_, err := auction.PlaceBid("bob", 80, 1, now)
	require.NoError(t, err)

	outcome, err := auction.Settle(endTime)
	require.NoError(t, err)
	require.True(t, auction.IsSettled())
	require.False(t, outcome.Sold)
	require.NotNil(t, outcome.Refund)
	require.Equal(t, "bob", outcome.Refund.Bidder)
	require.Equal(t, uint64(80), outcome.Refund.Amount)
}

func TestSettleWithoutBids(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)

	outcome, err := auction.Settle(endTime)
	require.NoError(t, err)
	require.True(t, auction.IsSettled())
	require.False(t, outcome.Sold)
	require.Nil(t, outcome.Refund)
}

func TestFailingSettle(t *testing.T) {
	t.Parallel()

	t.Run("before_end_time", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		outcome, err := auction.Settle(now)
		require.Nil(t, outcome)
		require.EqualError(t, err, domain.ErrNotYetEnded.Error())
		require.True(t, auction.IsActive())
	})

	t.Run("already_settled", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		_, err := auction.Settle(endTime)
		require.NoError(t, err)

		outcome, err := auction.Settle(endTime)
		require.Nil(t, outcome)
		require.EqualError(t, err, domain.ErrAuctionNotActive.Error())
	})
}

func TestCancel(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)

	err := auction.Cancel("alice")
	require.NoError(t, err)
	require.True(t, auction.IsCancelled())
}

func TestFailingCancel(t *testing.T) {
	t.Parallel()

	t.Run("not_seller", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		err := auction.Cancel("bob")
		require.EqualError(t, err, domain.ErrNotSeller.Error())
		require.True(t, auction.IsActive())
	})

	t.Run("with_bids", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		_, err := auction.PlaceBid("bob", 120, 1, now)
		require.NoError(t, err)

		err = auction.Cancel("alice")
		require.EqualError(t, err, domain.ErrAuctionHasBids.Error())
		require.True(t, auction.IsActive())
	})

	t.Run("already_cancelled", func(t *testing.T) {
		t.Parallel()

		auction := newTestAuction(t, 100, 150, 500)
		require.NoError(t, auction.Cancel("alice"))

		err := auction.Cancel("alice")
		require.EqualError(t, err, domain.ErrAuctionNotActive.Error())
	})
}

func TestFeeAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(10), domain.FeeAmount(200, 500))
	require.Equal(t, uint64(2), domain.FeeAmount(99, 250))
	require.Zero(t, domain.FeeAmount(3, 250))
	require.Equal(t, uint64(200), domain.FeeAmount(200, 10000))
	require.Zero(t, domain.FeeAmount(200, 0))

	// the split stays exact where a 64-bit product would overflow
	require.Equal(
		t, uint64(3000000000000000000),
		domain.FeeAmount(3000000000000000000, 10000),
	)
	require.Equal(
		t, uint64(150000000000000000),
		domain.FeeAmount(3000000000000000000, 500),
	)
	require.Equal(
		t, uint64(math.MaxUint64), domain.FeeAmount(math.MaxUint64, 10000),
	)
	require.Equal(
		t, uint64(461168601842738790), domain.FeeAmount(math.MaxUint64, 250),
	)
}

func TestSettleWithLargeAmounts(t *testing.T) {
	t.Parallel()

	auction := newTestAuction(t, 100, 150, 500)

	_, err := auction.PlaceBid("bob", 3000000000000000000, 1, now)
	require.NoError(t, err)

	outcome, err := auction.Settle(endTime)
	require.NoError(t, err)
	require.True(t, outcome.Sold)
	require.Equal(t, uint64(150000000000000000), outcome.Fee)
	require.Equal(t, uint64(2850000000000000000), outcome.SellerProceeds)
	require.Equal(t, outcome.Price, outcome.Fee+outcome.SellerProceeds)
}
