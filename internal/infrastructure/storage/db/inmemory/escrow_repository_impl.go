package inmemory

import (
	"context"
	"time"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

type escrowRepositoryImpl struct {
	store *escrowInmemoryStore
}

// newEscrowRepositoryImpl returns a new inmemory EscrowRepository
// implementation.
func newEscrowRepositoryImpl(store *escrowInmemoryStore) domain.EscrowRepository {
	return &escrowRepositoryImpl{store}
}

func (r escrowRepositoryImpl) GetEntry(
	_ context.Context, auctionId string,
) (*domain.EscrowEntry, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	entry, ok := r.store.entries[auctionId]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (r escrowRepositoryImpl) Lock(
	_ context.Context,
	auctionId, bidder string, amount uint64, currency domain.Currency,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.entries[auctionId]; ok {
		return domain.ErrEscrowInconsistency
	}

	r.store.entries[auctionId] = domain.EscrowEntry{
		AuctionId: auctionId,
		Bidder:    bidder,
		Amount:    amount,
		Currency:  currency,
		LockedAt:  time.Now(),
	}
	return nil
}

func (r escrowRepositoryImpl) Release(
	_ context.Context, auctionId, bidder string,
) (uint64, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	entry, ok := r.store.entries[auctionId]
	if !ok || entry.Bidder != bidder {
		return 0, domain.ErrEscrowInconsistency
	}

	delete(r.store.entries, auctionId)
	return entry.Amount, nil
}
