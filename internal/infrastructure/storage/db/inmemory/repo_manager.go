package inmemory

import (
	"context"
	"sync"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/core/ports"
)

type auctionInmemoryStore struct {
	locker   *sync.Mutex
	auctions map[string]domain.Auction
}

type escrowInmemoryStore struct {
	locker  *sync.Mutex
	entries map[string]domain.EscrowEntry
}

// RepoManager is the in-memory implementation of ports.RepoManager, used by
// unit tests and by the daemon when started with the inmemory db type.
type RepoManager struct {
	auctionStore      *auctionInmemoryStore
	escrowStore       *escrowInmemoryStore
	auctionRepository domain.AuctionRepository
	escrowRepository  domain.EscrowRepository

	txLocker sync.Mutex
}

// NewRepoManager returns a new in-memory ports.RepoManager.
func NewRepoManager() ports.RepoManager {
	auctionStore := &auctionInmemoryStore{
		locker:   &sync.Mutex{},
		auctions: make(map[string]domain.Auction),
	}
	escrowStore := &escrowInmemoryStore{
		locker:  &sync.Mutex{},
		entries: make(map[string]domain.EscrowEntry),
	}

	return &RepoManager{
		auctionStore:      auctionStore,
		escrowStore:       escrowStore,
		auctionRepository: newAuctionRepositoryImpl(auctionStore),
		escrowRepository:  newEscrowRepositoryImpl(escrowStore),
	}
}

func (d *RepoManager) AuctionRepository() domain.AuctionRepository {
	return d.auctionRepository
}

func (d *RepoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

// RunTransaction runs the handler against a snapshot of both stores: if the
// handler fails, every mutation it made is rolled back. Transactions are
// serialized with each other.
func (d *RepoManager) RunTransaction(
	ctx context.Context, readOnly bool,
	handler func(ctx context.Context) error,
) error {
	d.txLocker.Lock()
	defer d.txLocker.Unlock()

	auctions := d.auctionStore.snapshot()
	entries := d.escrowStore.snapshot()

	if err := handler(ctx); err != nil {
		if !readOnly {
			d.auctionStore.restore(auctions)
			d.escrowStore.restore(entries)
		}
		return err
	}
	return nil
}

func (d *RepoManager) Close() {}

func (s *auctionInmemoryStore) snapshot() map[string]domain.Auction {
	s.locker.Lock()
	defer s.locker.Unlock()

	auctions := make(map[string]domain.Auction, len(s.auctions))
	for k, v := range s.auctions {
		auctions[k] = v
	}
	return auctions
}

func (s *auctionInmemoryStore) restore(auctions map[string]domain.Auction) {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.auctions = auctions
}

func (s *escrowInmemoryStore) snapshot() map[string]domain.EscrowEntry {
	s.locker.Lock()
	defer s.locker.Unlock()

	entries := make(map[string]domain.EscrowEntry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	return entries
}

func (s *escrowInmemoryStore) restore(entries map[string]domain.EscrowEntry) {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.entries = entries
}
