package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/core/ports"
)

// CreateAuctionArgs are the explicit arguments of CreateAuction. Prices are
// expressed in base units of the auction's currency.
type CreateAuctionArgs struct {
	AssetRef      string
	Seller        string
	StartingPrice uint64
	ReservePrice  uint64
	Currency      domain.Currency
	EndTime       time.Time
}

// AuctionService is the client-facing operation surface of the settlement
// engine. Every operation is all-or-nothing: on error no fund movement, asset
// transfer or status change is observable.
type AuctionService interface {
	CreateAuction(ctx context.Context, args CreateAuctionArgs) (*domain.Auction, error)
	PlaceBid(
		ctx context.Context, auctionId, bidder string, amount uint64,
	) (*domain.Auction, error)
	SettleAuction(
		ctx context.Context, auctionId string,
	) (*domain.Auction, *domain.SettlementOutcome, error)
	CancelAuction(
		ctx context.Context, auctionId, caller string,
	) (*domain.Auction, error)
	GetAuction(ctx context.Context, auctionId string) (*domain.Auction, error)
	ListAuctions(ctx context.Context) ([]domain.Auction, error)
}

type auctionService struct {
	repoManager ports.RepoManager
	registry    ports.AssetRegistry
	payments    ports.PaymentService
	pubsub      ports.PubSub
	cfg         PlatformConfig

	locks *keyedMutex
	clock func() time.Time
}

// NewAuctionService returns an AuctionService backed by the given
// repositories and external collaborators.
func NewAuctionService(
	repoManager ports.RepoManager,
	registry ports.AssetRegistry,
	payments ports.PaymentService,
	pubsub ports.PubSub,
	cfg PlatformConfig,
) (AuctionService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &auctionService{
		repoManager: repoManager,
		registry:    registry,
		payments:    payments,
		pubsub:      pubsub,
		cfg:         cfg,
		locks:       newKeyedMutex(),
		clock:       time.Now,
	}, nil
}

func (s *auctionService) CreateAuction(
	ctx context.Context, args CreateAuctionArgs,
) (*domain.Auction, error) {
	// Creation serializes on the asset, so two concurrent creations for the
	// same asset cannot both pass the encumbrance check.
	unlock := s.locks.lock("asset:" + args.AssetRef)
	defer unlock()

	if !s.cfg.AcceptsCurrency(args.Currency) {
		return nil, domain.ErrInvalidCurrency
	}

	owner, err := s.registry.OwnerOf(ctx, args.AssetRef)
	if err != nil {
		return nil, err
	}
	if owner != args.Seller {
		return nil, domain.ErrNotOwner
	}

	encumbering, err := s.repoManager.AuctionRepository().GetActiveAuctionForAsset(
		ctx, args.AssetRef,
	)
	if err != nil {
		return nil, err
	}
	if encumbering != nil {
		return nil, domain.ErrAssetEncumbered
	}

	auction, err := domain.NewAuction(
		args.AssetRef, args.Seller, args.StartingPrice, args.ReservePrice,
		args.Currency, args.EndTime, s.clock(), s.cfg.FeeBasisPoints,
	)
	if err != nil {
		return nil, err
	}

	if err := s.registry.Lock(ctx, args.AssetRef, auction.Id); err != nil {
		return nil, err
	}

	if err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) error {
			return s.repoManager.AuctionRepository().AddAuction(ctx, auction)
		},
	); err != nil {
		if unlockErr := s.registry.Unlock(ctx, args.AssetRef); unlockErr != nil {
			log.WithError(unlockErr).WithField("asset", args.AssetRef).
				Error("failed to release asset lock after aborted creation")
		}
		return nil, err
	}

	s.publish(domain.AuctionEvent{
		Topic:     domain.EventAuctionCreated,
		AuctionId: auction.Id,
		AssetRef:  auction.AssetRef,
		Seller:    auction.Seller,
		Amount:    auction.StartingPrice,
		Currency:  auction.Currency,
	})
	return auction, nil
}

func (s *auctionService) PlaceBid(
	ctx context.Context, auctionId, bidder string, amount uint64,
) (*domain.Auction, error) {
	unlock := s.locks.lock(auctionId)
	defer unlock()

	var (
		auction  *domain.Auction
		previous *domain.Bid
	)
	if err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) error {
			var err error
			auction, err = s.repoManager.AuctionRepository().GetAuction(ctx, auctionId)
			if err != nil {
				return err
			}

			previous, err = auction.PlaceBid(
				bidder, amount, s.cfg.MinBidIncrement, s.clock(),
			)
			if err != nil {
				return err
			}

			balance, err := s.payments.BalanceOf(ctx, bidder, auction.Currency)
			if err != nil {
				return err
			}
			if balance < amount {
				return domain.ErrInsufficientFunds
			}

			// The superseded bid is refunded within the very same atomic step
			// that escrows the new one: at no point are two bidders' funds
			// locked for the same auction slot.
			if err := s.payments.Transfer(
				ctx, bidder, s.cfg.EscrowAccount, amount, auction.Currency,
			); err != nil {
				// the balance may have moved since the check above, on payment
				// rails the engine does not serialize
				return fmt.Errorf("%w: %s", domain.ErrInsufficientFunds, err)
			}
			if previous != nil {
				if _, err := s.repoManager.EscrowRepository().Release(
					ctx, auctionId, previous.Bidder,
				); err != nil {
					return err
				}
				if err := s.payments.Transfer(
					ctx, s.cfg.EscrowAccount, previous.Bidder, previous.Amount,
					auction.Currency,
				); err != nil {
					return err
				}
			}
			if err := s.repoManager.EscrowRepository().Lock(
				ctx, auctionId, bidder, amount, auction.Currency,
			); err != nil {
				return err
			}

			return s.repoManager.AuctionRepository().UpdateAuction(
				ctx, auctionId, func(_ *domain.Auction) (*domain.Auction, error) {
					return auction, nil
				},
			)
		},
	); err != nil {
		return nil, err
	}

	s.publish(domain.AuctionEvent{
		Topic:     domain.EventBidPlaced,
		AuctionId: auction.Id,
		AssetRef:  auction.AssetRef,
		Bidder:    bidder,
		Amount:    amount,
		Currency:  auction.Currency,
	})
	if previous != nil {
		s.publish(domain.AuctionEvent{
			Topic:     domain.EventBidRefunded,
			AuctionId: auction.Id,
			AssetRef:  auction.AssetRef,
			Bidder:    previous.Bidder,
			Amount:    previous.Amount,
			Currency:  auction.Currency,
		})
	}
	return auction, nil
}

func (s *auctionService) SettleAuction(
	ctx context.Context, auctionId string,
) (*domain.Auction, *domain.SettlementOutcome, error) {
	unlock := s.locks.lock(auctionId)
	defer unlock()

	var (
		auction *domain.Auction
		outcome *domain.SettlementOutcome
	)
	if err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) error {
			var err error
			auction, err = s.repoManager.AuctionRepository().GetAuction(ctx, auctionId)
			if err != nil {
				return err
			}

			outcome, err = auction.Settle(s.clock())
			if err != nil {
				return err
			}

			if outcome.Sold {
				if err := s.payoutWinningBid(ctx, auction, outcome); err != nil {
					return err
				}
			} else {
				if err := s.returnUnsold(ctx, auction, outcome); err != nil {
					return err
				}
			}

			return s.repoManager.AuctionRepository().UpdateAuction(
				ctx, auctionId, func(_ *domain.Auction) (*domain.Auction, error) {
					return auction, nil
				},
			)
		},
	); err != nil {
		return nil, nil, err
	}

	s.publish(domain.AuctionEvent{
		Topic:     domain.EventAuctionSettled,
		AuctionId: auction.Id,
		AssetRef:  auction.AssetRef,
		Seller:    auction.Seller,
		Bidder:    outcome.Winner,
		Amount:    outcome.Price,
		Fee:       outcome.Fee,
		Currency:  auction.Currency,
		Sold:      outcome.Sold,
	})
	return auction, outcome, nil
}

// payoutWinningBid executes the reserve-met outcome: escrowed funds are split
// between seller and treasury, and the asset is transferred to the winner.
func (s *auctionService) payoutWinningBid(
	ctx context.Context, auction *domain.Auction, outcome *domain.SettlementOutcome,
) error {
	released, err := s.repoManager.EscrowRepository().Release(
		ctx, auction.Id, outcome.Winner,
	)
	if err != nil {
		return err
	}
	if released != outcome.Price {
		return domain.ErrEscrowInconsistency
	}

	if outcome.SellerProceeds > 0 {
		if err := s.payments.Transfer(
			ctx, s.cfg.EscrowAccount, auction.Seller, outcome.SellerProceeds,
			auction.Currency,
		); err != nil {
			return err
		}
	}
	if outcome.Fee > 0 {
		if err := s.payments.Transfer(
			ctx, s.cfg.EscrowAccount, s.cfg.Treasury, outcome.Fee, auction.Currency,
		); err != nil {
			return err
		}
	}

	return s.registry.Transfer(ctx, auction.AssetRef, outcome.Winner)
}

// returnUnsold executes the reserve-not-met outcome: the standing bid, if any,
// is fully refunded and the asset's transfer-lock returns to the seller.
func (s *auctionService) returnUnsold(
	ctx context.Context, auction *domain.Auction, outcome *domain.SettlementOutcome,
) error {
	if outcome.Refund != nil {
		released, err := s.repoManager.EscrowRepository().Release(
			ctx, auction.Id, outcome.Refund.Bidder,
		)
		if err != nil {
			return err
		}
		if released != outcome.Refund.Amount {
			return domain.ErrEscrowInconsistency
		}
		if err := s.payments.Transfer(
			ctx, s.cfg.EscrowAccount, outcome.Refund.Bidder, released,
			auction.Currency,
		); err != nil {
			return err
		}
	}

	return s.registry.Unlock(ctx, auction.AssetRef)
}

func (s *auctionService) CancelAuction(
	ctx context.Context, auctionId, caller string,
) (*domain.Auction, error) {
	unlock := s.locks.lock(auctionId)
	defer unlock()

	var auction *domain.Auction
	if err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) error {
			var err error
			auction, err = s.repoManager.AuctionRepository().GetAuction(ctx, auctionId)
			if err != nil {
				return err
			}

			if err := auction.Cancel(caller); err != nil {
				return err
			}

			if err := s.registry.Unlock(ctx, auction.AssetRef); err != nil {
				return err
			}

			return s.repoManager.AuctionRepository().UpdateAuction(
				ctx, auctionId, func(_ *domain.Auction) (*domain.Auction, error) {
					return auction, nil
				},
			)
		},
	); err != nil {
		return nil, err
	}

	s.publish(domain.AuctionEvent{
		Topic:     domain.EventAuctionCancelled,
		AuctionId: auction.Id,
		AssetRef:  auction.AssetRef,
		Seller:    auction.Seller,
	})
	return auction, nil
}

func (s *auctionService) GetAuction(
	ctx context.Context, auctionId string,
) (*domain.Auction, error) {
	return s.repoManager.AuctionRepository().GetAuction(ctx, auctionId)
}

func (s *auctionService) ListAuctions(ctx context.Context) ([]domain.Auction, error) {
	return s.repoManager.AuctionRepository().GetAllAuctions(ctx)
}

func (s *auctionService) publish(event domain.AuctionEvent) {
	if s.pubsub == nil {
		return
	}
	event.Timestamp = s.clock()
	s.pubsub.Publish(event)
}

// keyedMutex serializes operations per auction (and per asset at creation)
// while leaving unrelated auctions fully parallel. Entries are refcounted and
// evicted once their last holder unlocks, so the map never outgrows the set of
// keys currently in use.
type keyedMutex struct {
	mtx   sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mtx  sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mtx.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mtx.Unlock()

	l.mtx.Lock()
	return func() {
		l.mtx.Unlock()

		k.mtx.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mtx.Unlock()
	}
}
