package dbbadger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/core/ports"
	dbbadger "github.com/rwamarket/auctiond/internal/infrastructure/storage/db/badger"
)

var ctx = context.Background()

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func newTestAuction(t *testing.T) *domain.Auction {
	t.Helper()

	now := time.Now()
	auction, err := domain.NewAuction(
		"asset-1", "alice", 100, 150,
		domain.CurrencyUSDC, now.Add(time.Hour), now, 250,
	)
	require.NoError(t, err)
	return auction
}

func TestAuctionRepository(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.AuctionRepository()

	auction := newTestAuction(t)
	require.NoError(t, repo.AddAuction(ctx, auction))

	stored, err := repo.GetAuction(ctx, auction.Id)
	require.NoError(t, err)
	require.Equal(t, auction.Id, stored.Id)
	require.Equal(t, auction.Seller, stored.Seller)
	require.True(t, stored.IsActive())

	_, err = repo.GetAuction(ctx, "missing")
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())

	active, err := repo.GetActiveAuctionForAsset(ctx, "asset-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, auction.Id, active.Id)

	active, err = repo.GetActiveAuctionForAsset(ctx, "asset-2")
	require.NoError(t, err)
	require.Nil(t, active)

	err = repo.UpdateAuction(
		ctx, auction.Id, func(a *domain.Auction) (*domain.Auction, error) {
			_, err := a.PlaceBid("bob", 120, 1, time.Now())
			return a, err
		},
	)
	require.NoError(t, err)

	stored, err = repo.GetAuction(ctx, auction.Id)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentBid)
	require.Equal(t, uint64(120), stored.CurrentBid.Amount)
	require.Equal(t, uint32(1), stored.BidCount)

	// once the auction is no longer active the asset stops being encumbered
	err = repo.UpdateAuction(
		ctx, auction.Id, func(a *domain.Auction) (*domain.Auction, error) {
			_, err := a.Settle(a.EndTime)
			return a, err
		},
	)
	require.NoError(t, err)

	active, err = repo.GetActiveAuctionForAsset(ctx, "asset-1")
	require.NoError(t, err)
	require.Nil(t, active)

	all, err := repo.GetAllAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestEscrowRepository(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.EscrowRepository()

	entry, err := repo.GetEntry(ctx, "auction-1")
	require.NoError(t, err)
	require.Nil(t, entry)

	err = repo.Lock(ctx, "auction-1", "bob", 120, domain.CurrencyUSDC)
	require.NoError(t, err)

	entry, err = repo.GetEntry(ctx, "auction-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "bob", entry.Bidder)
	require.Equal(t, uint64(120), entry.Amount)
	require.Equal(t, domain.CurrencyUSDC, entry.Currency)

	err = repo.Lock(ctx, "auction-1", "carol", 200, domain.CurrencyUSDC)
	require.EqualError(t, err, domain.ErrEscrowInconsistency.Error())

	_, err = repo.Release(ctx, "auction-1", "carol")
	require.EqualError(t, err, domain.ErrEscrowInconsistency.Error())

	released, err := repo.Release(ctx, "auction-1", "bob")
	require.NoError(t, err)
	require.Equal(t, uint64(120), released)

	_, err = repo.Release(ctx, "auction-1", "bob")
	require.EqualError(t, err, domain.ErrEscrowInconsistency.Error())
}

func TestTransactionRollback(t *testing.T) {
	repoManager := newTestRepoManager(t)

	auction := newTestAuction(t)
	expectedErr := errors.New("boom")

	err := repoManager.RunTransaction(ctx, false, func(ctx context.Context) error {
		if err := repoManager.AuctionRepository().AddAuction(ctx, auction); err != nil {
			return err
		}
		if err := repoManager.EscrowRepository().Lock(
			ctx, auction.Id, "bob", 120, domain.CurrencyUSDC,
		); err != nil {
			return err
		}
		return expectedErr
	})
	require.EqualError(t, err, expectedErr.Error())

	// the discarded transaction left nothing behind
	_, err = repoManager.AuctionRepository().GetAuction(ctx, auction.Id)
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
	entry, err := repoManager.EscrowRepository().GetEntry(ctx, auction.Id)
	require.NoError(t, err)
	require.Nil(t, entry)

	err = repoManager.RunTransaction(ctx, false, func(ctx context.Context) error {
		if err := repoManager.AuctionRepository().AddAuction(ctx, auction); err != nil {
			return err
		}
		return repoManager.EscrowRepository().Lock(
			ctx, auction.Id, "bob", 120, domain.CurrencyUSDC,
		)
	})
	require.NoError(t, err)

	stored, err := repoManager.AuctionRepository().GetAuction(ctx, auction.Id)
	require.NoError(t, err)
	require.Equal(t, auction.Id, stored.Id)
	entry, err = repoManager.EscrowRepository().GetEntry(ctx, auction.Id)
	require.NoError(t, err)
	require.NotNil(t, entry)
}
