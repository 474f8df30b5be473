package dbbadger

import (
	"context"
	"errors"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

type escrowRepositoryImpl struct {
	store *badgerhold.Store
}

func newEscrowRepositoryImpl(store *badgerhold.Store) domain.EscrowRepository {
	return escrowRepositoryImpl{store}
}

func (r escrowRepositoryImpl) GetEntry(
	ctx context.Context, auctionId string,
) (*domain.EscrowEntry, error) {
	entry, err := r.getEntry(ctx, auctionId)
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r escrowRepositoryImpl) Lock(
	ctx context.Context,
	auctionId, bidder string, amount uint64, currency domain.Currency,
) error {
	entry := domain.EscrowEntry{
		AuctionId: auctionId,
		Bidder:    bidder,
		Amount:    amount,
		Currency:  currency,
		LockedAt:  time.Now(),
	}

	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = r.store.TxInsert(tx, auctionId, &entry)
	} else {
		err = r.store.Insert(auctionId, &entry)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrEscrowInconsistency
		}
		return err
	}
	return nil
}

func (r escrowRepositoryImpl) Release(
	ctx context.Context, auctionId, bidder string,
) (uint64, error) {
	entry, err := r.getEntry(ctx, auctionId)
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, domain.ErrEscrowInconsistency
		}
		return 0, err
	}
	if entry.Bidder != bidder {
		return 0, domain.ErrEscrowInconsistency
	}

	if tx, ok := txFromContext(ctx); ok {
		err = r.store.TxDelete(tx, auctionId, domain.EscrowEntry{})
	} else {
		err = r.store.Delete(auctionId, domain.EscrowEntry{})
	}
	if err != nil {
		return 0, err
	}

	return entry.Amount, nil
}

func (r escrowRepositoryImpl) getEntry(
	ctx context.Context, auctionId string,
) (*domain.EscrowEntry, error) {
	var entry domain.EscrowEntry
	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = r.store.TxGet(tx, auctionId, &entry)
	} else {
		err = r.store.Get(auctionId, &entry)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
