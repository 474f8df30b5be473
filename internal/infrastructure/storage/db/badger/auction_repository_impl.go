package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

type auctionRepositoryImpl struct {
	store *badgerhold.Store
}

func newAuctionRepositoryImpl(store *badgerhold.Store) domain.AuctionRepository {
	return auctionRepositoryImpl{store}
}

func (r auctionRepositoryImpl) AddAuction(
	ctx context.Context, auction *domain.Auction,
) error {
	return r.insertAuction(ctx, *auction)
}

func (r auctionRepositoryImpl) GetAuction(
	ctx context.Context, id string,
) (*domain.Auction, error) {
	return r.getAuction(ctx, id)
}

func (r auctionRepositoryImpl) GetActiveAuctionForAsset(
	ctx context.Context, assetRef string,
) (*domain.Auction, error) {
	query := badgerhold.Where("AssetRef").Eq(assetRef).
		And("Status").Eq(domain.AuctionStatusActive)

	auctions, err := r.findAuctions(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(auctions) <= 0 {
		return nil, nil
	}

	return &auctions[0], nil
}

func (r auctionRepositoryImpl) GetAllAuctions(
	ctx context.Context,
) ([]domain.Auction, error) {
	return r.findAuctions(ctx, &badgerhold.Query{})
}

func (r auctionRepositoryImpl) UpdateAuction(
	ctx context.Context, id string,
	updateFn func(a *domain.Auction) (*domain.Auction, error),
) error {
	currentAuction, err := r.getAuction(ctx, id)
	if err != nil {
		return err
	}

	updatedAuction, err := updateFn(currentAuction)
	if err != nil {
		return err
	}

	return r.updateAuction(ctx, id, *updatedAuction)
}

func (r auctionRepositoryImpl) findAuctions(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Auction, error) {
	var auctions []domain.Auction
	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = r.store.TxFind(tx, &auctions, query)
	} else {
		err = r.store.Find(&auctions, query)
	}

	return auctions, err
}

func (r auctionRepositoryImpl) getAuction(
	ctx context.Context, id string,
) (*domain.Auction, error) {
	var auction domain.Auction
	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = r.store.TxGet(tx, id, &auction)
	} else {
		err = r.store.Get(id, &auction)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}

	return &auction, nil
}

func (r auctionRepositoryImpl) insertAuction(
	ctx context.Context, auction domain.Auction,
) error {
	if tx, ok := txFromContext(ctx); ok {
		return r.store.TxInsert(tx, auction.Id, &auction)
	}
	return r.store.Insert(auction.Id, &auction)
}

func (r auctionRepositoryImpl) updateAuction(
	ctx context.Context, id string, auction domain.Auction,
) error {
	if tx, ok := txFromContext(ctx); ok {
		return r.store.TxUpdate(tx, id, auction)
	}
	return r.store.Update(id, auction)
}
