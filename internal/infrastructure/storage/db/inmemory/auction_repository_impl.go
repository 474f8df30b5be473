package inmemory

import (
	"context"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

type auctionRepositoryImpl struct {
	store *auctionInmemoryStore
}

// newAuctionRepositoryImpl returns a new inmemory AuctionRepository
// implementation.
func newAuctionRepositoryImpl(store *auctionInmemoryStore) domain.AuctionRepository {
	return &auctionRepositoryImpl{store}
}

func (r auctionRepositoryImpl) AddAuction(
	_ context.Context, auction *domain.Auction,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.auctions[auction.Id] = *auction
	return nil
}

func (r auctionRepositoryImpl) GetAuction(
	_ context.Context, id string,
) (*domain.Auction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	auction, ok := r.store.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return &auction, nil
}

func (r auctionRepositoryImpl) GetActiveAuctionForAsset(
	_ context.Context, assetRef string,
) (*domain.Auction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, auction := range r.store.auctions {
		if auction.AssetRef == assetRef && auction.IsActive() {
			auction := auction
			return &auction, nil
		}
	}
	return nil, nil
}

func (r auctionRepositoryImpl) GetAllAuctions(
	_ context.Context,
) ([]domain.Auction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	auctions := make([]domain.Auction, 0, len(r.store.auctions))
	for _, auction := range r.store.auctions {
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

func (r auctionRepositoryImpl) UpdateAuction(
	_ context.Context, id string,
	updateFn func(a *domain.Auction) (*domain.Auction, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	current, ok := r.store.auctions[id]
	if !ok {
		return domain.ErrAuctionNotFound
	}

	updated, err := updateFn(&current)
	if err != nil {
		return err
	}

	r.store.auctions[id] = *updated
	return nil
}
